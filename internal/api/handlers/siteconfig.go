package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/apexdrive/internal/i18n"
)

// SiteConfig is the object published as window.APEX_CONFIG.
type SiteConfig struct {
	USDExchangeRate float64           `json:"USD_EXCHANGE_RATE"`
	Contact         SiteContactConfig `json:"contact"`
}

type SiteContactConfig struct {
	SubmissionCooldownSeconds int `json:"submissionCooldownSeconds"`
}

type SiteConfigHandler struct {
	script []byte
}

// NewSiteConfigHandler renders /config.js once; the values never change
// while the process runs.
func NewSiteConfigHandler(cfg SiteConfig) (*SiteConfigHandler, error) {
	conf, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	translations, err := json.Marshal(i18n.ClientTable())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("window.APEX_CONFIG = ")
	buf.Write(conf)
	buf.WriteString(";\nwindow.APEX_TRANSLATIONS = ")
	buf.Write(translations)
	buf.WriteString(";\n")

	return &SiteConfigHandler{script: buf.Bytes()}, nil
}

func (h *SiteConfigHandler) Script(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", h.script)
}
