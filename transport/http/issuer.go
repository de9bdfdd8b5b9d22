package http

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"

	"github.com/lil-gargs/portal/core"
	"github.com/lil-gargs/portal/ports"
)

const defaultSessionTTL = 5 * time.Minute

// SessionSeed describes the verification attempt a session is issued for.
// Contract summaries arrive pre-computed; the issuer only re-evaluates
// MeetsRequirement at verification time the way the real backend would.
type SessionSeed struct {
	DiscordID     string
	GuildID       string
	WalletAddress string
	Username      string
	Contracts     []core.ContractSummary
}

// Issuer is the development backend's in-memory session registry. It mints
// tokens, serves session lookups and verifies submitted signatures. Not for
// production use; the real backend owns NFT lookups and role sync.
type Issuer struct {
	tokenizer ports.Tokenizer
	ttl       time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*core.VerificationSession
}

// NewIssuer creates an issuer minting sessions with the given TTL;
// a non-positive TTL falls back to five minutes.
func NewIssuer(tokenizer ports.Tokenizer, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Issuer{
		tokenizer: tokenizer,
		ttl:       ttl,
		now:       time.Now,
		sessions:  make(map[string]*core.VerificationSession),
	}
}

// Issue creates a pending session and mints its token
func (i *Issuer) Issue(seed SessionSeed) (string, *core.VerificationSession, error) {
	nonceBytes := make([]byte, 16)
	if _, err := rand.Read(nonceBytes); err != nil {
		return "", nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	now := i.now()
	session := &core.VerificationSession{
		ID:                uuid.New().String(),
		DiscordID:         seed.DiscordID,
		GuildID:           seed.GuildID,
		WalletAddress:     seed.WalletAddress,
		Status:            core.StatusPending,
		ExpiresAt:         now.Add(i.ttl),
		CreatedAt:         now,
		Message:           fmt.Sprintf("Verify ownership: %s", hex.EncodeToString(nonceBytes)),
		Username:          seed.Username,
		ContractSummaries: seed.Contracts,
	}

	token, err := i.tokenizer.SessionToToken(session.ID, session.ExpiresAt)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create token: %w", err)
	}

	i.mu.Lock()
	i.sessions[session.ID] = session
	i.mu.Unlock()

	out := *session
	return token, &out, nil
}

// Get resolves a session by token, flipping it to expired when its deadline
// has passed.
func (i *Issuer) Get(token string) (*core.VerificationSession, error) {
	sessionID, err := i.tokenizer.TokenToSessionID(token)
	if err != nil {
		return nil, core.ErrSessionNotFound
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	session, ok := i.sessions[sessionID]
	if !ok {
		return nil, core.ErrSessionNotFound
	}

	if session.Status == core.StatusPending && i.now().After(session.ExpiresAt) {
		session.Status = core.StatusExpired
		session.Message = "" // challenge only exists while pending
	}

	out := *session
	return &out, nil
}

// Verify checks the base58 ed25519 signature over the session's challenge
// against the expected wallet address and marks the session verified.
func (i *Issuer) Verify(token, signatureBase58 string, username string) (*core.VerificationResult, error) {
	sessionID, err := i.tokenizer.TokenToSessionID(token)
	if err != nil {
		return nil, core.ErrSessionNotFound
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	session, ok := i.sessions[sessionID]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	if session.Status == core.StatusExpired || i.now().After(session.ExpiresAt) {
		session.Status = core.StatusExpired
		session.Message = ""
		return nil, core.ErrSessionExpired
	}
	if session.Status != core.StatusPending {
		return nil, fmt.Errorf("%w: session is already %s", core.ErrValidation, session.Status)
	}

	publicKey, err := base58.Decode(session.WalletAddress)
	if err != nil || len(publicKey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: session wallet address is not a valid public key", core.ErrValidation)
	}
	signature, err := base58.Decode(signatureBase58)
	if err != nil {
		return nil, fmt.Errorf("%w: signature is not valid base58", core.ErrValidation)
	}
	if !ed25519.Verify(ed25519.PublicKey(publicKey), []byte(session.Message), signature) {
		return nil, core.ErrInvalidSignature
	}

	nftCount := 0
	verified := true
	for idx := range session.ContractSummaries {
		summary := &session.ContractSummaries[idx]
		summary.MeetsRequirement = summary.OwnedCount >= summary.RequiredNFTCount
		nftCount += summary.OwnedCount
		if !summary.MeetsRequirement {
			verified = false
		}
	}

	now := i.now()
	session.Status = core.StatusVerified
	session.VerifiedAt = &now
	session.Message = ""
	if username != "" {
		session.Username = username
	}

	return &core.VerificationResult{
		IsVerified: verified,
		NFTCount:   nftCount,
		VerifiedAt: &now,
	}, nil
}
