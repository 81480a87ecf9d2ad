package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/EvgrafovDR/todolist-clone/internal/apperr"
	"github.com/EvgrafovDR/todolist-clone/internal/model"
	"github.com/EvgrafovDR/todolist-clone/internal/repository"
)

// codeVocabulary is the legacy verification-code alphabet, kept byte for
// byte. Codes are not guaranteed globally unique by construction; redemption
// takes the oldest row matching the code.
const (
	codeVocabulary = "qwertyuasdfghkzxvbnm123456789"
	codeLength     = 12
)

type BotLinkService struct {
	tgUserRepository repository.TgUserRepository
}

func NewBotLinkService(tgUserRepository repository.TgUserRepository) *BotLinkService {
	return &BotLinkService{tgUserRepository: tgUserRepository}
}

// Register returns the Telegram identity for tgID, creating it with a fresh
// verification code on first contact. The second return value reports
// whether the identity was just created.
func (s *BotLinkService) Register(tgID int64, chatID int64, username string) (*model.TgUser, bool, error) {
	tgUser, err := s.tgUserRepository.ByTgID(tgID)
	if err == nil {
		return tgUser, false, nil
	}
	if !errors.Is(err, repository.ErrTgUserNotFound) {
		return nil, false, err
	}

	code, err := GenerateVerificationCode()
	if err != nil {
		return nil, false, err
	}

	now := time.Now()
	tgUser = &model.TgUser{
		ID:               uuid.New().String(),
		TgID:             tgID,
		TgChatID:         &chatID,
		VerificationCode: code,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if username != "" {
		tgUser.Username = &username
	}

	err = s.tgUserRepository.Create(tgUser)
	if err != nil {
		return nil, false, fmt.Errorf("create telegram user: %w", err)
	}

	return tgUser, true, nil
}

// RotateCode issues a fresh verification code for the identity.
func (s *BotLinkService) RotateCode(tgUser *model.TgUser) error {
	code, err := GenerateVerificationCode()
	if err != nil {
		return err
	}

	tgUser.VerificationCode = code
	tgUser.UpdatedAt = time.Now()
	return s.tgUserRepository.Update(tgUser)
}

// Redeem links the identity holding the code to the authenticated user and
// rotates the code so it cannot be redeemed twice. An unknown code is a
// validation error on the verification_code field, with no state change.
func (s *BotLinkService) Redeem(userID, code string) (*model.TgUser, error) {
	tgUser, err := s.tgUserRepository.ByVerificationCode(code)
	if err != nil {
		if errors.Is(err, repository.ErrTgUserNotFound) {
			return nil, apperr.Validation("verification_code", "incorrect value")
		}
		return nil, err
	}

	fresh, err := GenerateVerificationCode()
	if err != nil {
		return nil, err
	}

	tgUser.UserID = &userID
	tgUser.VerificationCode = fresh
	tgUser.UpdatedAt = time.Now()

	err = s.tgUserRepository.Update(tgUser)
	if err != nil {
		return nil, err
	}

	return tgUser, nil
}

// GenerateVerificationCode draws codeLength characters uniformly at random
// from the fixed alphabet.
func GenerateVerificationCode() (string, error) {
	max := big.NewInt(int64(len(codeVocabulary)))
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate verification code: %w", err)
		}
		code[i] = codeVocabulary[n.Int64()]
	}
	return string(code), nil
}
