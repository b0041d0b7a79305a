package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maxwharris/Produck/internal/config"
	"github.com/maxwharris/Produck/internal/service"
	"github.com/maxwharris/Produck/internal/session"
)

func newSeedUserCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-user <name> <email> <password>",
		Short: "Create a user and print a session token",
		Args:  requireArgs(3, "<name> <email> <password>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, nil)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			log := logger.Sugar()

			s, err := openStore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close(context.Background()) }()

			if cfg.StoreDriver == config.DriverMemory {
				Warning("memory driver: the user only lives for this command")
			}
			signer := session.NewSigner(cfg.SigningSecret(), cfg.AccessTokenTTL)
			return seedUser(cmd.Context(), service.NewUserService(s, signer, log), args[0], args[1], args[2])
		},
	}
}

func seedUser(ctx context.Context, users *service.UserService, name, email, password string) error {
	result, err := users.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	Success("user created")
	KeyValue("id", result.User.ID.Hex())
	KeyValue("name", result.User.Name)
	KeyValue("email", result.User.Email)
	KeyValue("expires in", strconv.FormatInt(result.ExpiresIn, 10)+"s")
	KeyValue("token", result.Token)
	Muted("send it as: Authorization: Bearer <token>")
	return nil
}
