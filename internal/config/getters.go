package config

// KeysFor returns the keys bound to action, falling back to the built-in
// binding when the config leaves it empty.
func (c *Config) KeysFor(action string) []string {
	if keys := c.Keys.Get(action); len(keys) > 0 {
		return keys
	}
	return DefaultKeys().Get(action)
}

// TranscriptEnabled reports whether sessions should write a transcript.
func (c *Config) TranscriptEnabled() bool {
	return c.Transcript && c.LogDir != ""
}
