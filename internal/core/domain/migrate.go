package domain

// CurrentSettingsVersion is the settings schema version written by this build.
// Increment when a migration step is added below.
const CurrentSettingsVersion = 2

// MigrateSettings upgrades settings from any older schema version to the
// current one. It is a pure function: the input is not modified, and the
// result is deterministic for a given input.
//
// Version history:
//
//	v0: pre-versioned settings; clustering limits were implicit constants.
//	v1: explicit clustering settings (threshold, max cluster size).
//	v2: synthesis output settings (folder, backlinks, tags, language).
func MigrateSettings(s AppSettings) AppSettings {
	if s.Version >= CurrentSettingsVersion {
		return s
	}

	if s.Version < 1 {
		s = migrateV0toV1(s)
	}
	if s.Version < 2 {
		s = migrateV1toV2(s)
	}
	return s
}

// migrateV0toV1 fills in the clustering settings that v0 configs lack.
func migrateV0toV1(s AppSettings) AppSettings {
	if s.Clustering.SimilarityThreshold == 0 {
		s.Clustering.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if s.Clustering.MaxClusterSize == 0 {
		s.Clustering.MaxClusterSize = DefaultMaxClusterSize
	}
	if s.Clustering.MaxSuggestions == 0 {
		s.Clustering.MaxSuggestions = DefaultMaxSuggestions
	}
	s.Version = 1
	return s
}

// migrateV1toV2 introduces synthesis output settings. Backlinks were
// unconditionally written before v2, so the flag defaults to true.
func migrateV1toV2(s AppSettings) AppSettings {
	if s.Synthesis.Folder == "" {
		s.Synthesis.Folder = DefaultSynthesisFolder
	}
	s.Synthesis.IncludeBacklinks = true
	s.Version = 2
	return s
}
