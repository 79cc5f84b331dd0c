package models

import "time"

// Campaign status constants
const (
	StatusOpen      = "open"
	StatusFinalized = "finalized"
)

// User role constants
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Request types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidateUserId"`
	Reason      string `json:"reason"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Role     *string `json:"role,omitempty"`
	Password *string `json:"password,omitempty"`
}

type ResetDatabaseRequest struct {
	Confirm string `json:"confirm"`
}

// Response types

type LoginResponse struct {
	OK                 bool `json:"ok"`
	MustChangePassword bool `json:"mustChangePassword"`
}

type CastVoteResponse struct {
	OK         bool   `json:"ok"`
	CampaignID string `json:"campaignId"`
}

type ForceFinalizeResponse struct {
	OK               bool     `json:"ok"`
	CampaignID       string   `json:"campaignId"`
	Status           string   `json:"status"`
	Winners          []string `json:"winners"`
	WinningVoteCount int      `json:"winningVoteCount"`
	Forced           bool     `json:"forcedFinalized"`
	AlreadyFinalized bool     `json:"alreadyFinalized"`
}

type ResetCampaignResponse struct {
	OK           bool   `json:"ok"`
	CampaignID   string `json:"campaignId"`
	Status       string `json:"status"`
	DeletedVotes int    `json:"deletedVotes"`
}

type ResetVoteResponse struct {
	OK      bool   `json:"ok"`
	VoterID string `json:"voterUserId"`
}

type ResetDatabaseResponse struct {
	OK               bool `json:"ok"`
	CampaignsDeleted int  `json:"campaignsDeleted"`
	VotesDeleted     int  `json:"votesDeleted"`
	UsersReset       int  `json:"usersReset"`
}

type CreateUserResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// CampaignView is the campaign shape returned to callers. Winners is null
// (withheld) for non-admin callers while the campaign is still open.
type CampaignView struct {
	ID               string     `json:"id"`
	MonthLabel       string     `json:"monthLabel"`
	Status           string     `json:"status"`
	StartAt          time.Time  `json:"startAt"`
	EndAt            time.Time  `json:"endAt"`
	FinalizedAt      *time.Time `json:"finalizedAt"`
	Winners          []string   `json:"winners"`
	WinningVoteCount *int       `json:"winningVoteCount,omitempty"`
	ForcedFinalized  bool       `json:"forcedFinalized"`
}

// CampaignAdminView adds the per-candidate breakdown admins can see even
// while a campaign is still open.
type CampaignAdminView struct {
	Campaign   CampaignView   `json:"campaign"`
	TotalVotes int            `json:"totalVotes"`
	VoteCounts map[string]int `json:"voteCountsByUserId"`
	Votes      []Vote         `json:"votes"`
}

// Domain types

type Campaign struct {
	ID                string     `json:"id"`
	MonthLabel        string     `json:"monthLabel"`
	Status            string     `json:"status"`
	StartAt           time.Time  `json:"startAt"`
	EndAt             time.Time  `json:"endAt"`
	FinalizedAt       *time.Time `json:"finalizedAt,omitempty"`
	Winners           []string   `json:"winners"`
	WinningVoteCount  int        `json:"winningVoteCount"`
	ForcedFinalized   bool       `json:"forcedFinalized"`
	ForcedFinalizedAt *time.Time `json:"forcedFinalizedAt,omitempty"`
	ForcedFinalizedBy *string    `json:"forcedFinalizedBy,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

type Vote struct {
	CampaignID  string    `json:"campaignId"`
	VoterID     string    `json:"voterUserId"`
	CandidateID string    `json:"votedForUserId"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"createdAt"`
}

type User struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	Role               string    `json:"role"`
	MustChangePassword bool      `json:"mustChangePassword"`
	PasswordHash       string    `json:"-"` // Never expose in JSON
	CreatedAt          time.Time `json:"createdAt"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
