package displaylist

// DefaultProcessThreshold is the buffer length at which a list that does
// not retain items processes them during Append.
const DefaultProcessThreshold = 100

// Settings are fixed when a List is created.
type Settings struct {
	// UseCachedPicture replays items into a recorder as they are processed
	// and compiles them into one Picture at Finalize.
	UseCachedPicture bool `toml:"use_cached_picture"`

	// RetainIndividualItems keeps items after processing. Without it the
	// buffer is dropped once items are folded into the aggregates.
	RetainIndividualItems bool `toml:"retain_individual_items"`

	// Strict makes contract violations panic with *ContractError.
	// Otherwise they are logged, counted and ignored.
	Strict bool `toml:"strict"`

	// ProcessThreshold bounds the buffer of a non-retaining list.
	// Zero means DefaultProcessThreshold.
	ProcessThreshold int `toml:"process_threshold"`

	// Trace configures diagnostic snapshots.
	Trace TraceConfig `toml:"trace"`
}

// DefaultSettings returns settings that retain items and do not cache.
func DefaultSettings() Settings {
	return Settings{
		RetainIndividualItems: true,
		ProcessThreshold:      DefaultProcessThreshold,
		Trace:                 DefaultTraceConfig(),
	}
}

func (s Settings) processThreshold() int {
	if s.ProcessThreshold <= 0 {
		return DefaultProcessThreshold
	}
	return s.ProcessThreshold
}
