package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresDSN(t *testing.T) {
	c := &Config{
		DBHost: "db", DBPort: "5433", DBUser: "app", DBPassword: "secret",
		DBName: "users", DBSSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:secret@db:5433/users?sslmode=disable", c.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	c := &Config{CORSAllowedOrigins: " http://a.test , http://b.test ,"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.CORSOrigins())

	c = &Config{}
	assert.Empty(t, c.CORSOrigins())
}
