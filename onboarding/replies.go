// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package onboarding

import "fmt"

// Reply texts. Existing users and support docs quote these verbatim;
// change them only deliberately.
const (
	ReplyAlreadyProcessed = "You've already used this service to join the GitHub organization."
	ReplyInvalidUsername  = "That doesn't appear to be a valid GitHub username. Please try again with a valid GitHub username."
	ReplyEmptyUsername    = "Please provide a GitHub username."
	ReplyAlreadyInOrg     = "Sorry - this user has already been added to the Github organization."
	ReplyDeclined         = "Okay, please send me the correct GitHub username."
	ReplyPromptFailed     = "Sorry, there was an error processing your request."

	replyInviteSentFormat     = "✅ Great! I've sent an invitation to join the GitHub organization. Please check your email associated with GitHub account: %s"
	replyInviteFailedPrefix   = "❌ Sorry, there was an error sending the GitHub invitation. Please contact "
	replyInviteFailedFallback = "an administrator"
	promptFormat              = "Did you mean this GitHub profile: <%s|%s>?"
)

// ReplyInviteSent is the success reply for handle.
func ReplyInviteSent(handle string) string {
	return fmt.Sprintf(replyInviteSentFormat, handle)
}

// ReplyInviteFailed is the generic invitation failure reply. When
// adminUserID is set the reply mentions that user instead of "an
// administrator".
func ReplyInviteFailed(adminUserID string) string {
	contact := replyInviteFailedFallback
	if adminUserID != "" {
		contact = "<@" + adminUserID + ">"
	}
	return replyInviteFailedPrefix + contact + "."
}

// NewPrompt builds the confirmation prompt for profile.
func NewPrompt(profile *Profile) Prompt {
	return Prompt{
		Text:       fmt.Sprintf(promptFormat, profile.HTMLURL, profile.Login),
		Login:      profile.Login,
		ProfileURL: profile.HTMLURL,
	}
}
