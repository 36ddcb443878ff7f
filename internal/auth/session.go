package auth

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
)

// loadSession reads the cached session, if any. Cache problems are never
// fatal; the caller just signs in again.
func (c *Client) loadSession() *Session {
	if c.sessionFile == "" {
		return nil
	}

	data, err := os.ReadFile(c.sessionFile)
	if err != nil {
		return nil
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		logrus.Debugf("Discarding unreadable session cache %s: %v", c.sessionFile, err)
		return nil
	}
	return &session
}

func (c *Client) saveSession(session *Session) {
	if c.sessionFile == "" || session == nil {
		return
	}

	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	if err := os.WriteFile(c.sessionFile, data, 0600); err != nil {
		logrus.Warnf("Failed to cache session to %s: %v", c.sessionFile, err)
	}
}
