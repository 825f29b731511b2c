// internal/app/bootstrap/backends.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/auxilium/internal/app/system/mailer"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"go.uber.org/zap"
)

func mediaConfig(appCfg AppConfig) media.Config {
	return media.Config{
		URL:       appCfg.CloudinaryURL,
		CloudName: appCfg.CloudinaryCloudName,
		APIKey:    appCfg.CloudinaryAPIKey,
		APISecret: appCfg.CloudinaryAPISecret,
	}
}

// newMedia returns the Cloudinary uploader, or media.Disabled when no
// credentials are configured. Uploads then fail with ErrNotConfigured.
func newMedia(appCfg AppConfig, logger *zap.Logger) (media.Uploader, error) {
	cfg := mediaConfig(appCfg)
	if !cfg.Configured() {
		logger.Warn("cloudinary not configured; media uploads are disabled")
		return media.Disabled{}, nil
	}
	cld, err := media.NewCloudinary(cfg)
	if err != nil {
		logger.Error("cloudinary init failed", zap.Error(err))
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	logger.Info("cloudinary media enabled")
	return cld, nil
}

// newMailSender picks the transport named by mail_transport.
func newMailSender(appCfg AppConfig, logger *zap.Logger) (mailer.Sender, error) {
	from := mailFrom(appCfg)
	switch appCfg.MailTransport {
	case mailGmail:
		g, err := mailer.NewGmail(mailer.GmailConfig{
			User:         appCfg.MailSMTPUser,
			ClientID:     appCfg.GmailClientID,
			ClientSecret: appCfg.GmailClientSecret,
			RefreshToken: appCfg.GmailRefreshToken,
			From:         from,
		})
		if err != nil {
			return nil, fmt.Errorf("gmail mailer: %w", err)
		}
		logger.Info("mail transport: gmail", zap.String("from", from.Email))
		return g, nil
	case mailSendGrid:
		logger.Info("mail transport: sendgrid", zap.String("from", from.Email))
		return mailer.NewSendGrid(appCfg.SendGridAPIKey, from), nil
	case mailOff:
		logger.Info("mail transport: off")
		return mailer.Nop{}, nil
	default:
		logger.Info("mail transport: smtp",
			zap.String("host", appCfg.MailSMTPHost),
			zap.Int("port", appCfg.MailSMTPPort))
		return mailer.NewSMTP(mailer.SMTPConfig{
			Host:     appCfg.MailSMTPHost,
			Port:     appCfg.MailSMTPPort,
			Username: appCfg.MailSMTPUser,
			Password: appCfg.MailSMTPPass,
			From:     from,
		}), nil
	}
}

func newMailer(sender mailer.Sender, appCfg AppConfig, logger *zap.Logger) *mailer.Mailer {
	return mailer.New(sender, appCfg.TimeoutLong, logger.Named("mailer"))
}
