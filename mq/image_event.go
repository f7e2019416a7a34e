package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"venuehub/rdx"
)

type ImageEvent struct {
	LocalPath string `json:"localPath"`
	Entity    string `json:"entity"`
	FileName  string `json:"fileName"`
	Userid    string `json:"userid"`
}

// Config cache so we don't keep re-reading env vars
var (
	publicBaseURL     string
	publicStripPrefix string
)

func init() {
	publicBaseURL = strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/")
	if publicBaseURL == "" {
		publicBaseURL = "http://localhost:8080"
	}
	publicStripPrefix = filepath.ToSlash(strings.TrimRight(os.Getenv("PUBLIC_STRIP_PREFIX"), "/"))
}

// ToPublicURL converts a local path into an accessible HTTP URL.
func ToPublicURL(p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	p = filepath.ToSlash(p)
	if publicStripPrefix != "" {
		p = strings.TrimPrefix(p, publicStripPrefix)
	}
	return publicBaseURL + path.Clean("/"+p)
}

// NotifyImageSaved publishes an ImageEvent so downstream consumers (thumbnail
// sync, moderation queues) see new uploads.
func NotifyImageSaved(localPath, entity, fileName, userid string) error {
	event := ImageEvent{
		LocalPath: ToPublicURL(localPath),
		Entity:    entity,
		FileName:  fileName,
		Userid:    userid,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal image event: %w", err)
	}
	if err := rdx.Conn.Publish(context.Background(), "image-events", data).Err(); err != nil {
		return fmt.Errorf("publish to redis: %w", err)
	}

	log.Printf("[NotifyImageSaved] published image event for %s/%s", entity, fileName)
	return nil
}
