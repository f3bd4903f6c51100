package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/jestfeed/backend/internal/models"
	"github.com/jestfeed/backend/internal/repositories"
	"github.com/jestfeed/backend/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

var (
	handles = []string{
		"deepak", "sarah_wit", "tech_guru", "office_warrior", "pun_intended",
		"dry_spell", "dark_matter", "wholesome_wendy", "savage_sam", "genz_gina",
		"roast_master", "toilet_philosopher", "meeting_survivor", "code_clown",
		"satire_sally",
	}

	bios = []string{
		"This user is too mysterious for a bio.",
		"Professional overthinker and amateur comedian.",
		"I speak fluent JavaScript and broken English.",
		"Surviving corporate life one meme at a time.",
		"My puns are intended. All of them.",
		"Here for the laughs, staying for the chaos.",
		"Certified chuckle dealer.",
	}

	categories = []string{
		"Roasts & Burns", "Relationship & Dating Humor", "Tech & Geek Humor",
		"Office & College Life", "Political Satire", "Random & Toilet Humor",
	}

	postTexts = []string{
		"My code doesn't work and I have no idea why. My code works and I have no idea why.",
		"Dating me is like a software license agreement. Nobody reads the terms and everyone clicks accept.",
		"Our standup meeting just hit the 45 minute mark. Send snacks.",
		"I told my plants a joke. They're still not growing. Tough crowd.",
		"The printer works today. I'm suspicious.",
		"My gym membership is the most expensive monthly donation I make.",
		"Politicians promising faster internet is my favorite genre of fiction.",
		"I put 'attention to detail' on my resume and misspelled my own name.",
		"Group projects taught me everything about carrying dead weight.",
		"My bank account and my sense of humor are both running on fumes.",
	}

	commentTexts = []string{
		"This is painfully accurate.",
		"I feel personally attacked.",
		"Tell me you're a developer without telling me you're a developer.",
		"Saving this for my next performance review.",
		"Why is this my whole life in one post?",
		"Underrated take.",
	}
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	if err := db.Postgres.AutoMigrate(&models.User{}, &models.Notification{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	if err := repositories.EnsureHandleIndex(db.Postgres); err != nil {
		log.Fatalf("Failed to create handle index: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Start fresh
	if err := db.Postgres.Exec("DELETE FROM notifications").Error; err != nil {
		log.Fatalf("Failed to clear notifications: %v", err)
	}
	if err := db.Postgres.Exec("DELETE FROM users").Error; err != nil {
		log.Fatalf("Failed to clear users: %v", err)
	}
	if err := db.Mongo.Database(cfg.MongoDBName).Collection("posts").Drop(ctx); err != nil {
		log.Fatalf("Failed to drop posts collection: %v", err)
	}
	log.Println("Cleared existing data.")

	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	postRepo := repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDBName))

	users := seedUsers(userRepo)
	seedPosts(ctx, postRepo, users)

	log.Println("Data imported!")
}

func seedUsers(userRepo repositories.UserRepository) []models.User {
	// All seeded users share the same password
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	users := make([]models.User, 0, len(handles))
	for _, handle := range handles {
		user := models.User{
			Handle:        handle,
			Password:      string(hashed),
			Bio:           bios[rand.Intn(len(bios))],
			ProfilePicURL: fmt.Sprintf("https://picsum.photos/seed/%s/100/100", handle),
			HumorTag:      models.HumorTags[rand.Intn(len(models.HumorTags))],
		}
		if err := userRepo.CreateUser(&user); err != nil {
			log.Fatalf("Failed to create user %s: %v", handle, err)
		}
		users = append(users, user)
	}
	log.Printf("%d users created.", len(users))
	return users
}

func seedPosts(ctx context.Context, postRepo repositories.PostRepository, users []models.User) {
	const postCount = 50

	for i := 0; i < postCount; i++ {
		author := users[rand.Intn(len(users))]

		// Reactions, each user in at most one entry
		var reactions []models.ReactionEntry
		for _, u := range users {
			if rand.Intn(3) != 0 {
				continue
			}
			rtype := models.ReactionTypes[rand.Intn(len(models.ReactionTypes))]
			reactions, _, _ = models.ApplyReaction(reactions, u.ID, rtype)
		}

		// Root comments only; threads grow organically through the API
		var comments []models.Comment
		for j := 0; j < rand.Intn(4); j++ {
			commenter := users[rand.Intn(len(users))]
			comments = append(comments, models.NewComment(commenter.ID, commentTexts[rand.Intn(len(commentTexts))], nil))
		}

		post := models.Post{
			AuthorID:    author.ID,
			Text:        postTexts[rand.Intn(len(postTexts))],
			Category:    categories[rand.Intn(len(categories))],
			IsAnonymous: rand.Intn(10) == 0,
			Reactions:   reactions,
			Comments:    comments,
		}

		if err := postRepo.CreatePost(ctx, &post); err != nil {
			log.Fatalf("Failed to create post: %v", err)
		}
	}
	log.Printf("%d posts created.", postCount)
}
