package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr         string
	Port               string
	DatabasePath       string
	SessionSecret      string
	GinMode            string
	SiteName           string
	RemoteContentURL   string
	RootEditorUsername string
	RootEditorPassword string
}

// RemoteConfigured reports whether a remote content service is set up.
// When false the platform runs disconnected: authoring writes target the
// local store and the read cascade starts at the local tier.
func (c AppConfig) RemoteConfigured() bool {
	return strings.TrimSpace(c.RemoteContentURL) != ""
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// REMOTE_CONTENT_URL 配置错误会在此处直接报错：否则每次读取都会
// 静默降级到本地数据而无人察觉。
func Load() (AppConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "campusfront.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "campusfront-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	siteName := strings.TrimSpace(os.Getenv("SITE_NAME"))
	if siteName == "" {
		siteName = "Campus Front"
	}

	remoteURL := strings.TrimSpace(os.Getenv("REMOTE_CONTENT_URL"))
	if remoteURL != "" {
		parsed, err := url.Parse(remoteURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return AppConfig{}, fmt.Errorf("invalid REMOTE_CONTENT_URL %q", remoteURL)
		}
		remoteURL = strings.TrimRight(remoteURL, "/")
	}

	rootEditorUsername := strings.TrimSpace(os.Getenv("ROOT_EDITOR_USERNAME"))
	rootEditorPassword := strings.TrimSpace(os.Getenv("ROOT_EDITOR_PASSWORD"))

	return AppConfig{
		ListenAddr:         listenAddr,
		Port:               port,
		DatabasePath:       databasePath,
		SessionSecret:      sessionSecret,
		GinMode:            ginMode,
		SiteName:           siteName,
		RemoteContentURL:   remoteURL,
		RootEditorUsername: rootEditorUsername,
		RootEditorPassword: rootEditorPassword,
	}, nil
}
