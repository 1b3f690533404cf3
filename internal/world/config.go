package world

const (
	DefaultPadding   = 0.3
	DefaultMoveSpeed = 6.0
	DefaultSpawnX    = 0.0
	DefaultSpawnZ    = 0.0
)

// Config captures the tunables applied when a level is loaded.
type Config struct {
	Padding   float64 `json:"padding"`
	MoveSpeed float64 `json:"moveSpeed"`
	SpawnX    float64 `json:"spawnX"`
	SpawnZ    float64 `json:"spawnZ"`
}

func (cfg Config) normalized() Config {
	normalized := cfg
	if normalized.Padding < 0 {
		normalized.Padding = DefaultPadding
	}
	if normalized.MoveSpeed <= 0 {
		normalized.MoveSpeed = DefaultMoveSpeed
	}
	return normalized
}

// Normalized returns a config with defaults applied.
func (cfg Config) Normalized() Config {
	return cfg.normalized()
}

// DefaultConfig mirrors the tunables of the original demo level.
func DefaultConfig() Config {
	return Config{
		Padding:   DefaultPadding,
		MoveSpeed: DefaultMoveSpeed,
		SpawnX:    DefaultSpawnX,
		SpawnZ:    DefaultSpawnZ,
	}
}
