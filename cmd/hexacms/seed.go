package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
	articleApp "github.com/davicafu/hexacms/internal/article/application"
	articleDomain "github.com/davicafu/hexacms/internal/article/domain"
)

func seedCommand(a *app) *cobra.Command {
	var users, articles int
	var password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with fake users and articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.connect(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer svc.close(a.log)
			return seed(cmd.Context(), svc, users, articles, password, a.log)
		},
	}

	cmd.Flags().IntVar(&users, "users", 10, "number of users to create")
	cmd.Flags().IntVar(&articles, "articles", 20, "number of articles to create")
	cmd.Flags().StringVar(&password, "password", "password123", "password for every seeded account")
	return cmd
}

// seed crea un admin autor y después usuarios y artículos aleatorios.
func seed(ctx context.Context, svc *services, users, articles int, password string, log *zap.Logger) error {
	faker := gofakeit.New(0)

	author, err := svc.admins.Create(ctx, faker.Email(), password, faker.Name())
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	created := 0
	for i := 0; i < users; i++ {
		_, err := svc.users.Create(ctx, faker.Email(), password, faker.Name())
		if errors.Is(err, accountDomain.ErrEmailTaken) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		created++
	}

	for i := 0; i < articles; i++ {
		status := faker.RandomString(articleDomain.Statuses)
		_, err := svc.articles.Create(ctx, author.ID, articleApp.ArticleInput{
			Title:   faker.Sentence(5),
			Content: faker.Paragraph(2, 4, 12, " "),
			Status:  &status,
			Tags:    []string{faker.Word(), faker.Word()},
		})
		if err != nil {
			return fmt.Errorf("seed article: %w", err)
		}
	}

	log.Info("🌱 Datos de prueba generados",
		zap.String("admin", author.Email),
		zap.Int("users", created),
		zap.Int("articles", articles),
	)
	return nil
}
