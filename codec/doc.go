// Package codec holds the JSON plumbing used by the azauth client: value codecs
// for fields whose wire form is not a plain JSON primitive, a snake_case naming
// policy for untagged struct fields, and a typed decoder that refuses partial
// documents.
//
// Codecs are registered on a Registry, never globally. Each Registry freezes its
// own json-iterator API, so two clients configured with different wire formats
// can live in the same process:
//
//	reg := codec.NewRegistry()
//	codec.Register[codec.Color](reg, codec.ColorCodec{})
//	codec.Register[time.Time](reg, codec.InstantCodec{})
//
//	profile, err := codec.Decode[Profile](reg, body)
//
// DefaultRegistry returns a fresh Registry with the Color and Instant codecs
// already installed.
package codec
