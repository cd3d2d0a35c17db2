package constants

// Centralized constants for headers, env keys and routes.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "SOW_CONFIG"
	EnvDBPath              = "SOW_DB"

	// Session / Cookie names
	CookieSessionName = "sow_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteMarkets            = "/markets"
	RoutePublicGames        = "/public-games"
	RouteLeaderboard        = "/leaderboard"
	RouteVersion            = "/version"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RoutePlayerStats        = "/player-stats"
	RouteGames              = "/games"
	RouteGamesJoin          = "/games/join"
	RouteGameByID           = "/games/:gameCode"
	RouteGameStart          = "/games/:gameCode/start"
	RouteGameEnd            = "/games/:gameCode/end"
	RouteGameLeave          = "/games/:gameCode/leave"
	RouteGameMoves          = "/games/:gameCode/moves"
	RouteGameEconomy        = "/games/:gameCode/economy"
	RouteGameEconomyHistory = "/games/:gameCode/economy/history"
	RouteGameEconomyCycle   = "/games/:gameCode/economy/cycle"
	RouteGameEconomyEvent   = "/games/:gameCode/economy/random-event"
	RouteGameEconomyAutoSim = "/games/:gameCode/economy/auto-simulate"
	RouteGamePreview        = "/games/:gameCode/economy/preview"
	RouteGameLive           = "/games/:gameCode/live"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
)

// User-facing error strings shared by handlers
const (
	ErrInvalidRequest         = "invalid request"
	ErrInvalidGameID          = "invalid game code"
	ErrGameNotFound           = "game not found"
	ErrGameFull               = "game is full"
	ErrGameNotInProgress      = "game is not in progress"
	ErrMovesLockedResolving   = "moves are locked; resolving current week"
	ErrAuthRequired           = "authentication required"
	ErrInvalidSession         = "invalid session"
	ErrPlayerNotInThisGame    = "player is not part of this game"
	ErrOnlyHostMayDoThis      = "only the host may do this"
	ErrFailedCreateGame       = "failed to create game"
	ErrFailedUpdateGame       = "failed to update game"
	ErrFailedStoreMoves       = "failed to store moves"
	ErrFailedLoadEconomy      = "failed to load economy state"
	ErrNotEnoughPlayers       = "need at least two players to start"
	ErrGameAlreadyStarted     = "game already started"
	ErrCannotLeaveAfterStart  = "cannot leave after the game has started"
	ErrEmailRequired          = "email is required"
	ErrFailedFetchGames       = "failed to fetch games"
	ErrFailedFetchStats       = "failed to fetch player stats"
	ErrFailedFetchLeaderboard = "failed to fetch leaderboard"
	ErrFailedEncodeGame       = "failed to encode game"
	ErrFailedEncodeGames      = "failed to encode games"
	ErrFailedRemovePlayer     = "failed to remove player"
	ErrFailedEndGame          = "failed to end game"
	ErrFailedReadUserData     = "failed to read user data: %s"
	ErrGameNameExceeds        = "game name exceeds 32 characters"
	ErrDescriptionExceeds     = "description exceeds 256 characters"
	ErrMissingGoogleEnv       = "missing google oauth configuration"
	ErrFailedExchangeToken    = "failed to exchange authorization code"
	ErrFailedGetUserInfo      = "failed to fetch user info"
	ErrNoEmailInGoogleProfile = "google profile has no email"
	ErrFailedCreateSession    = "failed to create session"

	// Log field names
	LogFieldGameID = "game_id"
	LogFieldAddr   = "addr"
	LogFieldWeek   = "week"
)
