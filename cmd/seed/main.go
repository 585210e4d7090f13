// Command seed populates an engine instance with generated users and
// topics, then plays judged debates through the full lifecycle. It doubles
// as a smoke test and a way to produce a realistic leaderboard locally.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	app "github.com/debattle/engine/internal/app"
	"github.com/debattle/engine/internal/domain/model"
	"github.com/debattle/engine/pkg/logger"
)

var categories = []string{"politics", "technology", "ethics", "science", "education"}

func main() {
	userCount := flag.Int("users", 20, "number of users to register")
	debateCount := flag.Int("debates", 100, "number of debates to play")
	seed := flag.Int64("seed", 0, "random seed (0 for nondeterministic)")
	flag.Parse()

	if err := run(*userCount, *debateCount, *seed); err != nil {
		os.Stderr.WriteString("seed failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(userCount, debateCount int, seed int64) error {
	if userCount < 2 {
		return fmt.Errorf("at least two users are required to play debates, got %d", userCount)
	}
	if err := logger.Init(); err != nil {
		return err
	}
	_ = logger.SetLevelString("warn")

	faker := gofakeit.New(uint64(seed))
	rng := rand.New(rand.NewSource(seed))

	ctx := context.Background()
	svc := app.New()
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	users := make([]*model.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		name := faker.Name()
		username := strings.ToLower(strings.ReplaceAll(name, " ", "."))
		user, err := svc.RegisterUser(ctx, faker.Email(), name, username)
		if err != nil {
			return fmt.Errorf("register user: %w", err)
		}
		users = append(users, user)
	}

	topics := make([]*model.Topic, 0, len(categories)*2)
	for _, category := range categories {
		for i := 0; i < 2; i++ {
			topic, err := svc.AddTopic(ctx, model.Topic{
				Title:      faker.Sentence(6),
				Category:   category,
				Difficulty: rng.Intn(5) + 1,
				Official:   true,
			})
			if err != nil {
				return fmt.Errorf("add topic: %w", err)
			}
			topics = append(topics, topic)
		}
	}

	for i := 0; i < debateCount; i++ {
		if err := playDebate(ctx, svc, faker, rng, users, topics); err != nil {
			return fmt.Errorf("debate %d: %w", i, err)
		}
	}

	board, err := svc.Leaderboard(ctx, 10)
	if err != nil {
		return err
	}

	fmt.Printf("seeded %d users, %d topics, %d debates\n\n", len(users), len(topics), debateCount)
	fmt.Println("rank  rating  games  win%   user")
	for _, e := range board.Entries {
		fmt.Printf("%4d  %6d  %5d  %4.1f   %s\n", e.Rank, e.Rating, e.GamesPlayed, e.WinRate, e.DisplayName)
	}
	return nil
}

// playDebate runs one debate through create, start, and judgment with a
// random verdict weighted lightly toward the higher-rated side.
func playDebate(ctx context.Context, svc *app.Service, faker *gofakeit.Faker, rng *rand.Rand, users []*model.User, topics []*model.Topic) error {
	pro := users[rng.Intn(len(users))]
	con := users[rng.Intn(len(users))]
	for con.UID == pro.UID {
		con = users[rng.Intn(len(users))]
	}
	topic := topics[rng.Intn(len(topics))]

	debate, err := svc.CreateDebate(ctx, app.CreateDebateRequest{
		TopicID:   topic.ID,
		Format:    "standard",
		ProUserID: pro.UID,
		ConUserID: con.UID,
	})
	if err != nil {
		return err
	}
	if _, err := svc.StartDebate(ctx, debate.ID); err != nil {
		return err
	}

	winner := pro.UID
	if rng.Float64() < 0.4 {
		winner = con.UID
	}
	draw := rng.Float64() < 0.1
	if draw {
		winner = ""
	}

	judgment := model.Judgment{
		ID:         faker.UUID(),
		Winner:     winner,
		Draw:       draw,
		Confidence: 0.5 + rng.Float64()/2,
		Reasoning:  faker.Sentence(10),
		Scores: map[string]model.Scores{
			pro.UID: randomScores(rng),
			con.UID: randomScores(rng),
		},
	}

	if _, _, err := svc.SubmitJudgment(ctx, debate.ID, judgment); err != nil {
		return err
	}
	return nil
}

func randomScores(rng *rand.Rand) model.Scores {
	return model.Scores{
		Logic:      50 + rng.Intn(50),
		Evidence:   50 + rng.Intn(50),
		Clarity:    50 + rng.Intn(50),
		Rebuttal:   50 + rng.Intn(50),
		Engagement: 50 + rng.Intn(50),
	}
}
