package firebase

import (
	"context"
	"fmt"
	"os"

	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"cwrs/pkg/config"
	"cwrs/pkg/logger"
)

// ClientOption picks the service account credentials: inline JSON wins over
// the file path.
func ClientOption(cfg *config.Config) (option.ClientOption, error) {
	if cfg.ServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)), nil
	}

	if _, err := os.Stat(cfg.ServiceAccountPath); err != nil {
		return nil, fmt.Errorf("service account file %s: %w", cfg.ServiceAccountPath, err)
	}

	logger.Info("Using Firebase service account from file: %s", cfg.ServiceAccountPath)
	return option.WithCredentialsFile(cfg.ServiceAccountPath), nil
}

func NewApp(ctx context.Context, cfg *config.Config, opt option.ClientOption) (*fbapp.App, error) {
	fbCfg := &fbapp.Config{ProjectID: cfg.FirebaseProject}
	if cfg.StorageBucket != "" {
		fbCfg.StorageBucket = cfg.StorageBucket
	}
	return fbapp.NewApp(ctx, fbCfg, opt)
}
