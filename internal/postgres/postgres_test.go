package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigString(t *testing.T) {
	testCases := []struct {
		name     string
		conf     Config
		expected string
	}{
		{
			name:     "defaults",
			conf:     Config{},
			expected: "host=127.0.0.1 dbname=postgres port=5432 sslmode=prefer",
		},
		{
			name:     "credentials",
			conf:     Config{Host: "db", DBName: "sale", Port: "6543", SSLMode: "disable", User: "sale", Password: "secret"},
			expected: "host=db dbname=sale port=6543 sslmode=disable user=sale password=secret",
		},
		{
			name:     "url wins",
			conf:     Config{Host: "db", URL: "postgres://localhost/sale"},
			expected: "postgres://localhost/sale",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.conf.String())
		})
	}
}

func TestConfigRuntimeParams(t *testing.T) {
	params := Config{}.RuntimeParams()
	assert.Equal(t, DefaultApplicationName, params["application_name"])
	assert.Equal(t, "10000ms", params["lock_timeout"])

	params = Config{ApplicationName: "sale-a", LockTimeout: 1500 * time.Millisecond}.RuntimeParams()
	assert.Equal(t, "sale-a", params["application_name"])
	assert.Equal(t, "1500ms", params["lock_timeout"])
}
