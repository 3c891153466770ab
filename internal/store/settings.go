package store

// Settings keys. Values live in the same kv table as the catalog blobs.
const (
	keyGitHubToken    = "github_token"
	keyGitHubRepo     = "github_repo"
	keyGitHubFilePath = "github_file_path"
	keyTMDBAPIKey     = "tmdb_api_key"
)

const defaultGitHubFilePath = "playlist.json"

// GitHubConfig is the persisted upload destination.
type GitHubConfig struct {
	Token    string
	Repo     string // "owner/repo"
	FilePath string
}

// SaveGitHubConfig persists the upload destination. Errors are logged and
// swallowed like every other persistence failure.
func (s *Store) SaveGitHubConfig(cfg GitHubConfig) {
	s.putSetting(keyGitHubToken, cfg.Token)
	s.putSetting(keyGitHubRepo, cfg.Repo)
	s.putSetting(keyGitHubFilePath, cfg.FilePath)
}

// GitHubConfig returns the persisted upload destination; FilePath defaults
// to "playlist.json" when unset.
func (s *Store) GitHubConfig() GitHubConfig {
	cfg := GitHubConfig{
		Token:    s.getSetting(keyGitHubToken, ""),
		Repo:     s.getSetting(keyGitHubRepo, ""),
		FilePath: s.getSetting(keyGitHubFilePath, defaultGitHubFilePath),
	}
	return cfg
}

// SaveTMDBAPIKey persists the metadata-provider API key.
func (s *Store) SaveTMDBAPIKey(key string) {
	s.putSetting(keyTMDBAPIKey, key)
}

// TMDBAPIKey returns the persisted metadata-provider API key, "" if unset.
func (s *Store) TMDBAPIKey() string {
	return s.getSetting(keyTMDBAPIKey, "")
}

func (s *Store) putSetting(key, value string) {
	if err := s.kv.Put(key, value); err != nil {
		s.log.Error("persist setting", "key", key, "error", err)
	}
}

func (s *Store) getSetting(key, fallback string) string {
	value, ok, err := s.kv.Get(key)
	if err != nil {
		s.log.Error("load setting", "key", key, "error", err)
		return fallback
	}
	if !ok {
		return fallback
	}
	return value
}
