package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Persistence.Driver)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, 1600*time.Millisecond, cfg.Simulator.Interval)
	assert.Equal(t, 1200.0, cfg.Filter.PriceMax)
	assert.Equal(t, defaultCategories, cfg.Filter.Categories)
	assert.Equal(t, 2021, cfg.Filter.Years[0])
	assert.Equal(t, time.Now().Year(), cfg.Filter.Years[len(cfg.Filter.Years)-1])
	assert.Equal(t, "itens", cfg.Firestore.ItemsCollection)
}

func TestFromViper_Listas(t *testing.T) {
	v := viper.New()
	v.Set("FILTER_YEARS", "2023, 2024")
	v.Set("FILTER_CATEGORIES", "Camisetas,,Bonés")
	v.Set("FILTER_PRICE_MAX", "350.5")
	v.Set("SIMULATOR_INTERVAL_MS", "250")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024}, cfg.Filter.Years)
	assert.Equal(t, []string{"Camisetas", "Bonés"}, cfg.Filter.Categories)
	assert.Equal(t, 350.5, cfg.Filter.PriceMax)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulator.Interval)
}

func TestFromViper_FirestoreSinProyecto(t *testing.T) {
	v := viper.New()
	v.Set("PERSISTENCE_DRIVER", "firestore")
	_, err := fromViper(v)
	assert.Error(t, err, "firestore sin FIRESTORE_PROJECT_ID debe fallar")
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("PERSISTENCE_DRIVER", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "sipac", Password: "p@ss", DBName: "estoque", SSLMode: "disable"}
	assert.Equal(t, "postgres://sipac:p%40ss@db:5432/estoque?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
