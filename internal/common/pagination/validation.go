package pagination

import "fmt"

// Validate validates pagination parameters against the configuration.
// Returns an error if limit is less than 1 or greater than config.MaxLimit.
// Sort and cursor are never validated: unknown sorts fall back to the
// default and malformed cursors restart from the first page.
func (r Request) Validate(config Config) error {
	if r.Limit < 1 || r.Limit > config.MaxLimit {
		return fmt.Errorf("limit must be between 1 and %d", config.MaxLimit)
	}
	return nil
}

// WithDefaults applies default values from config to Request.
//
// Rules:
//   - If limit <= 0, set to config.DefaultLimit
//   - If limit > config.MaxLimit, cap to config.MaxLimit
func (r Request) WithDefaults(config Config) Request {
	if config.DefaultLimit <= 0 || config.MaxLimit <= 0 {
		config = DefaultConfig()
	}
	if r.Limit <= 0 {
		r.Limit = config.DefaultLimit
	}
	if r.Limit > config.MaxLimit {
		r.Limit = config.MaxLimit
	}
	return r
}
