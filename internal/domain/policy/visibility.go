// Package policy provides authorization decisions for bastion access.
package policy

import "github.com/AzureCamel/Bastion-Manager/internal/domain/entities"

// GMFn reports whether a user holds the GM role.
type GMFn func(userID string) bool

// OwnsFn reports whether a user owns an actor.
type OwnsFn func(userID, actorID string) bool

// CanView reports whether a user may view an actor's bastion: GMs see
// everything, owners see their own, and visibility rules open a bastion
// to the public or to explicitly listed users. A caller with no
// identity is denied outright, even for public bastions: every grant,
// public ones included, requires a known user.
func CanView(actorID, userID string, isGM GMFn, owns OwnsFn, rule entities.VisibilityRule) bool {
	if userID == "" {
		return false
	}
	if isGM != nil && isGM(userID) {
		return true
	}
	if owns != nil && owns(userID, actorID) {
		return true
	}
	return rule.Allows(userID)
}
