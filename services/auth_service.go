package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"adcraft/database"
	"adcraft/models"
	"adcraft/utils"
)

const magicLinkTTL = 15 * time.Minute

var (
	// ErrInvalidMagicLink covers expired, used, unknown and mismatched
	// tokens. Deliberately one error so callers cannot probe which it was.
	ErrInvalidMagicLink = errors.New("invalid or expired magic link")
)

// AuthService implements passwordless login: a one-time emailed token is
// exchanged for a JWT pair. Unknown emails become new accounts on
// verification.
type AuthService struct {
	users      *mongo.Collection
	magicLinks *mongo.Collection
	email      *EmailService
	jwt        *utils.JWTManager
	appBaseURL string
}

func NewAuthService(email *EmailService, jwt *utils.JWTManager, appBaseURL string) *AuthService {
	return &AuthService{
		users:      database.Users(),
		magicLinks: database.MagicLinks(),
		email:      email,
		jwt:        jwt,
		appBaseURL: appBaseURL,
	}
}

// RequestMagicLink issues a one-time token and mails it. The token is
// bcrypt-hashed at rest; only the email ever carries the plaintext.
func (s *AuthService) RequestMagicLink(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	hash, err := utils.HashToken(token)
	if err != nil {
		return fmt.Errorf("failed to hash token: %w", err)
	}

	now := time.Now().UTC()
	link := &models.MagicLink{
		ID:        primitive.NewObjectID(),
		Email:     email,
		TokenHash: hash,
		ExpiresAt: now.Add(magicLinkTTL),
		Used:      false,
		CreatedAt: now,
	}
	if _, err := s.magicLinks.InsertOne(ctx, link); err != nil {
		return fmt.Errorf("failed to store magic link: %w", err)
	}

	signup := !s.userExists(ctx, email)
	loginURL := fmt.Sprintf("%s/auth/verify?email=%s&token=%s",
		s.appBaseURL, url.QueryEscape(email), url.QueryEscape(token))

	return s.email.SendMagicLink(email, loginURL, int(magicLinkTTL.Minutes()), signup)
}

// VerifyMagicLink exchanges a one-time token for a JWT pair, creating the
// account on first login.
func (s *AuthService) VerifyMagicLink(ctx context.Context, email, token string) (*models.User, *utils.TokenPair, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var link models.MagicLink
	err := s.magicLinks.FindOne(ctx,
		bson.M{
			"email":      email,
			"used":       false,
			"expires_at": bson.M{"$gt": time.Now().UTC()},
		},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	).Decode(&link)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, ErrInvalidMagicLink
		}
		return nil, nil, fmt.Errorf("failed to load magic link: %w", err)
	}

	if !utils.CheckTokenHash(token, link.TokenHash) {
		return nil, nil, ErrInvalidMagicLink
	}

	// Single use: claim the link before issuing tokens. A concurrent verify
	// with the same token loses the race and gets ErrInvalidMagicLink.
	res, err := s.magicLinks.UpdateOne(ctx,
		bson.M{"_id": link.ID, "used": false},
		bson.M{"$set": bson.M{"used": true}},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to claim magic link: %w", err)
	}
	if res.ModifiedCount == 0 {
		return nil, nil, ErrInvalidMagicLink
	}

	user, err := s.findOrCreateUser(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.jwt.GenerateTokenPair(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	utils.Logger().Info("user authenticated", zap.String("email", email))
	return user, pair, nil
}

// Refresh trades a valid refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := utils.StringToObjectID(claims.UserID)
	if err != nil {
		return nil, utils.ErrInvalidToken
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.jwt.GenerateTokenPair(user.ID.Hex(), user.Email)
}

// GetUserByID loads an active user. Used by the auth middleware on every
// request.
func (s *AuthService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) userExists(ctx context.Context, email string) bool {
	err := s.users.FindOne(ctx, bson.M{"email": email, "is_deleted": false}).Err()
	return err == nil
}

func (s *AuthService) findOrCreateUser(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email, "is_deleted": false}).Decode(&user)
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	now := time.Now().UTC()
	user = models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		IsDeleted: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.users.InsertOne(ctx, &user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	utils.Logger().Info("user created", zap.String("email", email))
	return &user, nil
}
