package mailer

import (
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendBuildsMultipartMessage(t *testing.T) {
	m, err := New(Config{Host: "smtp.example.com", User: "bot", Password: "pw"})
	require.NoError(t, err)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	csv := []byte("machine,part\npress-1,filter\n")
	require.NoError(t, m.Send("ops@example.com", "Order 87", "see attachment", "order_87.csv", csv))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "bot", gotFrom)
	assert.Equal(t, []string{"ops@example.com"}, gotTo)
	body := string(gotMsg)
	assert.Contains(t, body, "Subject: Order 87")
	assert.Contains(t, body, "multipart/mixed")
	assert.Contains(t, body, `attachment; filename="order_87.csv"`)
	assert.Contains(t, body, "base64")
}

func TestConfigValidate(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)

	cfg := Config{Host: "h", User: "u"}
	cfg.SetDefaults()
	assert.Equal(t, 587, cfg.Port)
	assert.Equal(t, "u", cfg.From)
}
