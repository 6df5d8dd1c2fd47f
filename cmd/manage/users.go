package main

import (
	"fmt"

	"github.com/spf13/cobra"

	profileRepo "library-catalog/internal/domains/profile/repository"
	profileService "library-catalog/internal/domains/profile/service"
	socialModel "library-catalog/internal/domains/socialaccount/model"
	socialRepo "library-catalog/internal/domains/socialaccount/repository"
	socialService "library-catalog/internal/domains/socialaccount/service"
	userRepo "library-catalog/internal/domains/user/repository"
	userService "library-catalog/internal/domains/user/service"
	"library-catalog/internal/infrastructure/database"
	pkgdb "library-catalog/pkg/database"
)

// accounts gom các service cần cho quản lý tài khoản, không cần MinIO hay Redis
type accounts struct {
	db     *database.PostgresDB
	users  userService.ServiceInterface
	repo   userRepo.RepositoryInterface
	social socialService.ServiceInterface
}

func openAccounts(cmd *cobra.Command) (*accounts, error) {
	db, err := openDB(cmd.Context())
	if err != nil {
		return nil, err
	}

	social := socialService.NewSocialService(socialRepo.NewPostgresRepository(db.Pool))
	profiles := profileService.NewProfileService(profileRepo.NewPostgresRepository(db.Pool), social)
	repo := userRepo.NewPostgresRepository(db.Pool)

	return &accounts{
		db: db,
		// CLI không phát session token
		users:  userService.NewUserService(repo, pkgdb.NewTransactor(db.Pool), nil, profiles),
		repo:   repo,
		social: social,
	}, nil
}

func newCreateUserCmd() *cobra.Command {
	var email, password string
	var staff bool

	cmd := &cobra.Command{
		Use:   "createuser",
		Short: "Create a user account together with its profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := openAccounts(cmd)
			if err != nil {
				return err
			}
			defer acc.db.Close()

			u, err := acc.users.CreateUser(cmd.Context(), email, password, staff)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s), staff=%t\n", u.ID, u.Email, u.IsStaff)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().BoolVar(&staff, "staff", false, "grant staff permissions")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSetStaffCmd() *cobra.Command {
	var email string
	var revoke bool

	cmd := &cobra.Command{
		Use:   "setstaff",
		Short: "Grant or revoke staff permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := openAccounts(cmd)
			if err != nil {
				return err
			}
			defer acc.db.Close()

			u, err := acc.users.FindByEmail(cmd.Context(), email)
			if err != nil {
				return err
			}
			if err := acc.repo.SetStaff(cmd.Context(), u.ID, !revoke); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %d staff=%t\n", u.ID, !revoke)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().BoolVar(&revoke, "revoke", false, "remove staff permissions instead")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLinkSocialCmd() *cobra.Command {
	var email, provider, uid string

	cmd := &cobra.Command{
		Use:   "linksocial",
		Short: "Link an external social account to a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := openAccounts(cmd)
			if err != nil {
				return err
			}
			defer acc.db.Close()

			u, err := acc.users.FindByEmail(cmd.Context(), email)
			if err != nil {
				return err
			}
			a, err := acc.social.Link(cmd.Context(), u.ID, provider, uid)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "linked %s account %s to user %d\n", a.Provider, a.UID, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&provider, "provider", socialModel.ProviderGitHub, "provider name")
	cmd.Flags().StringVar(&uid, "uid", "", "provider-side user id")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}
