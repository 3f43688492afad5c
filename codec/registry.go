package codec

import (
	"encoding"
	"encoding/json"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"
	"unsafe"

	goerrors "github.com/goliatone/go-errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

// Registry is a table of value codecs keyed by Go type, plus the naming policy
// for untagged fields. The json-iterator API is built on first use; codecs
// registered after that point are rejected.
type Registry struct {
	mu      sync.Mutex
	entries map[reflect.Type]entry
	naming  NamingStrategy
	api     jsoniter.API
}

type entry struct {
	decoder    jsoniter.ValDecoder
	encoder    jsoniter.ValEncoder
	ptrDecoder jsoniter.ValDecoder
	ptrEncoder jsoniter.ValEncoder
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithNaming overrides the snake_case naming strategy.
func WithNaming(naming NamingStrategy) RegistryOption {
	return func(r *Registry) {
		if naming != nil {
			r.naming = naming
		}
	}
}

// NewRegistry returns an empty registry using SnakeCase naming.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries: map[reflect.Type]entry{},
		naming:  SnakeCase,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultRegistry returns a new registry with ColorCodec and InstantCodec.
func DefaultRegistry(opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	Register[Color](r, ColorCodec{})
	Register[time.Time](r, InstantCodec{})
	return r
}

// Register installs c for values of type V, replacing any previous codec for
// V. It panics if the registry has already been used to encode or decode.
func Register[V any](r *Registry, c Codec[V]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.api != nil {
		panic("codec: Register called after the registry was frozen")
	}

	typ := reflect.TypeOf((*V)(nil)).Elem()
	dec := &valueDecoder[V]{codec: c, name: typ.String()}
	enc := &valueEncoder[V]{codec: c}
	r.entries[typ] = entry{
		decoder:    dec,
		encoder:    enc,
		ptrDecoder: &optionalDecoder[V]{inner: dec},
		ptrEncoder: &optionalEncoder[V]{inner: enc},
	}
}

// Has reports whether a codec is registered for typ.
func (r *Registry) Has(typ reflect.Type) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[typ]
	return ok
}

// Naming returns the wire name for an untagged Go field name.
func (r *Registry) Naming(field string) string {
	return r.naming(field)
}

// Freeze builds the json-iterator API so that later Register calls panic.
// Clients freeze their registry before it can be shared between goroutines.
func (r *Registry) Freeze() {
	r.API()
}

// API returns the frozen json-iterator API for this registry, freezing it on
// first use.
func (r *Registry) API() jsoniter.API {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.api == nil {
		api := jsoniter.Config{
			EscapeHTML:             true,
			SortMapKeys:            true,
			ValidateJsonRawMessage: true,
			CaseSensitive:          true,
		}.Froze()
		api.RegisterExtension(&registryExtension{
			entries: r.entries,
			naming:  r.naming,
		})
		r.api = api
	}
	return r.api
}

// owns reports whether typ is decoded as an opaque value rather than walked
// field by field.
func (r *Registry) owns(typ reflect.Type) bool {
	if r.Has(typ) {
		return true
	}
	ptr := reflect.PointerTo(typ)
	return ptr.Implements(jsonUnmarshalerType) || ptr.Implements(textUnmarshalerType)
}

var (
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

type registryExtension struct {
	jsoniter.DummyExtension
	entries map[reflect.Type]entry
	naming  NamingStrategy
}

// Pointers to registered types are matched here as well: *time.Time would
// otherwise be picked up by json-iterator's json.Marshaler support.
func (x *registryExtension) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	t := typ.Type1()
	if e, ok := x.entries[t]; ok {
		return e.decoder
	}
	if t.Kind() == reflect.Ptr {
		if e, ok := x.entries[t.Elem()]; ok {
			return e.ptrDecoder
		}
	}
	return nil
}

func (x *registryExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	t := typ.Type1()
	if e, ok := x.entries[t]; ok {
		return e.encoder
	}
	if t.Kind() == reflect.Ptr {
		if e, ok := x.entries[t.Elem()]; ok {
			return e.ptrEncoder
		}
	}
	return nil
}

func (x *registryExtension) UpdateStructDescriptor(desc *jsoniter.StructDescriptor) {
	for _, binding := range desc.Fields {
		field := binding.Field.Name()
		if field == "" || unicode.IsLower(rune(field[0])) || field[0] == '_' {
			continue
		}

		tag, hasTag := binding.Field.Tag().Lookup("json")
		if hasTag {
			name, _, _ := strings.Cut(tag, ",")
			if name != "" {
				continue
			}
		}

		name := x.naming(field)
		binding.ToNames = []string{name}
		binding.FromNames = []string{name}
	}
}

type valueDecoder[V any] struct {
	codec Codec[V]
	name  string
}

func (d *valueDecoder[V]) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if iter.ReadNil() {
		return
	}

	raw := iter.SkipAndReturnBytes()
	// A top level number is only terminated by io.EOF.
	if iter.Error != nil && iter.Error != io.EOF {
		return
	}

	v, err := d.codec.Decode(raw)
	if err != nil {
		iter.ReportError("decode "+d.name, codecMessage(err))
		return
	}
	*(*V)(ptr) = v
}

type valueEncoder[V any] struct {
	codec Codec[V]
}

func (e *valueEncoder[V]) IsEmpty(ptr unsafe.Pointer) bool {
	if z, ok := any(*(*V)(ptr)).(interface{ IsZero() bool }); ok {
		return z.IsZero()
	}
	return false
}

func (e *valueEncoder[V]) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	raw, err := e.codec.Encode(*(*V)(ptr))
	if err != nil {
		if stream.Error == nil {
			stream.Error = err
		}
		return
	}
	_, _ = stream.Write(raw)
}

type optionalDecoder[V any] struct {
	inner *valueDecoder[V]
}

func (d *optionalDecoder[V]) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if iter.ReadNil() {
		*(**V)(ptr) = nil
		return
	}

	v := new(V)
	d.inner.Decode(unsafe.Pointer(v), iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return
	}
	*(**V)(ptr) = v
}

type optionalEncoder[V any] struct {
	inner *valueEncoder[V]
}

func (e *optionalEncoder[V]) IsEmpty(ptr unsafe.Pointer) bool {
	return *(**V)(ptr) == nil
}

func (e *optionalEncoder[V]) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	v := *(**V)(ptr)
	if v == nil {
		stream.WriteNil()
		return
	}
	e.inner.Encode(unsafe.Pointer(v), stream)
}

// codecMessage flattens a codec error for iterator reporting, keeping the
// reason recorded in its metadata.
func codecMessage(err error) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		msg := richErr.Message
		if detail, ok := richErr.Metadata["error"].(string); ok && detail != "" {
			msg += ": " + detail
		} else if reason, ok := richErr.Metadata["reason"].(string); ok && reason != "" {
			msg += ": " + reason
		}
		return msg
	}
	return err.Error()
}
