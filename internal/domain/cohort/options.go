package cohort

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithMinSize sets the minimum cohort size.
func WithMinSize(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.minSize = n
		}
	}
}
