package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewClient_NoTimeoutByDefault(t *testing.T) {
	c := NewClient("http://localhost:5000", nil)
	assert.Zero(t, c.http.Timeout, "requests stay pending until the server answers")
}

func TestWithTimeout(t *testing.T) {
	c := NewClient("http://localhost:5000", nil, WithTimeout(15*time.Second))
	assert.Equal(t, 15*time.Second, c.http.Timeout)
}
