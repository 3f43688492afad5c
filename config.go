package azauth

import (
	stderrors "errors"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
)

// ClientConfig is a plain Config implementation.
type ClientConfig struct {
	BaseURL   string
	UserAgent string
}

func (c ClientConfig) GetBaseURL() string {
	return c.BaseURL
}

func (c ClientConfig) GetUserAgent() string {
	return c.UserAgent
}

// Validate will run validation rules
func (c ClientConfig) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&c,
			validation.Field(
				&c.BaseURL,
				validation.Required,
				is.RequestURL,
				validation.By(httpScheme),
			),
		)
	}, "Invalid client configuration")
}

func httpScheme(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return err
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return nil
	}
	return stderrors.New("must use http or https")
}

func configFrom(cfg Config) ClientConfig {
	if cfg == nil {
		return ClientConfig{}
	}
	return ClientConfig{
		BaseURL:   strings.TrimSpace(cfg.GetBaseURL()),
		UserAgent: strings.TrimSpace(cfg.GetUserAgent()),
	}
}

func isPlainHTTP(baseURL string) bool {
	return strings.HasPrefix(strings.ToLower(baseURL), "http://")
}
