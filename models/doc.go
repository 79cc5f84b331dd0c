// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: username, password
  - ChangePasswordRequest: newPassword
  - CastVoteRequest: candidateUserId, reason
  - CreateUserRequest: username, password, role
  - UpdateUserRequest: role and/or password
  - ResetDatabaseRequest: confirm ("RESET")

# Response Types

Types for JSON responses:

  - LoginResponse: ok, mustChangePassword
  - CastVoteResponse: ok, campaignId
  - ForceFinalizeResponse: winners, winningVoteCount, alreadyFinalized
  - ResetCampaignResponse: deletedVotes
  - ResetDatabaseResponse: deletion and reset counts
  - CampaignView / CampaignAdminView: caller-facing campaign shapes
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Campaign: one voting month and its lifecycle state
  - Vote: one voter's ballot within a campaign
  - User: employee or admin account

# Constants

Campaign status values:

	StatusOpen      = "open"
	StatusFinalized = "finalized"

User roles:

	RoleAdmin    = "admin"
	RoleEmployee = "employee"
*/
package models
