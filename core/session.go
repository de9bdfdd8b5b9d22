package core

import "time"

// SessionStatus is the server-driven lifecycle status of a verification session.
// Transitions are monotonic: pending -> verified|expired, verified -> completed.
type SessionStatus string

const (
	StatusPending   SessionStatus = "pending"
	StatusVerified  SessionStatus = "verified"
	StatusCompleted SessionStatus = "completed"
	StatusExpired   SessionStatus = "expired"
)

// VerificationSession identifies one wallet verification attempt issued by the backend.
type VerificationSession struct {
	ID                string            `json:"id"`
	DiscordID         string            `json:"discordId"`
	GuildID           string            `json:"guildId"`
	WalletAddress     string            `json:"walletAddress"` // expected base58 address, empty until bound
	Status            SessionStatus     `json:"status"`
	ExpiresAt         time.Time         `json:"expiresAt"` // immutable once issued
	VerifiedAt        *time.Time        `json:"verifiedAt,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	Message           string            `json:"message,omitempty"` // challenge to sign, present only while pending
	Username          string            `json:"username,omitempty"`
	ContractSummaries []ContractSummary `json:"contractSummaries,omitempty"`
}

// ContractSummary is the server-computed holdings snapshot for one collection.
// MeetsRequirement is trusted as given; the client never recomputes it.
type ContractSummary struct {
	ContractAddress  string `json:"contractAddress"`
	RequiredNFTCount int    `json:"requiredNftCount"`
	OwnedCount       int    `json:"ownedCount"`
	RoleID           string `json:"roleId,omitempty"`
	RoleName         string `json:"roleName,omitempty"`
	MeetsRequirement bool   `json:"meetsRequirement"`
}

// VerificationResult is the outcome returned by the backend after a signature submission.
type VerificationResult struct {
	IsVerified bool       `json:"isVerified"`
	NFTCount   int        `json:"nftCount"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
}

// FetchStatus is the session store's load state. Unlike SessionStatus it is client-owned
// and never persisted across restarts.
type FetchStatus string

const (
	FetchIdle    FetchStatus = "idle"
	FetchLoading FetchStatus = "loading"
	FetchLoaded  FetchStatus = "loaded"
	FetchError   FetchStatus = "error"
)

// SigningState is the signature flow's ephemeral state.
type SigningState string

const (
	SigningIdle    SigningState = "idle"
	SigningPending SigningState = "signing"
	SigningSuccess SigningState = "success"
	SigningError   SigningState = "error"
)
