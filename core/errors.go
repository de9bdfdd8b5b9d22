package core

import "errors"

var (
	ErrNetwork          = errors.New("network request failed")
	ErrSessionNotFound  = errors.New("verification session not found")
	ErrValidation       = errors.New("signature rejected by server")
	ErrWalletRejected   = errors.New("wallet rejected the request")
	ErrNotConnected     = errors.New("wallet is not connected")
	ErrWalletMismatch   = errors.New("connected wallet does not match the session wallet")
	ErrSessionExpired   = errors.New("verification session has expired")
	ErrConnectPending   = errors.New("a wallet connection attempt is already pending")
	ErrNoCapability     = errors.New("wallet does not support message signing")
	ErrInvalidSignature = errors.New("invalid signature")
)
