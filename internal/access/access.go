// Package access evaluates per-request permissions for catalog entities.
//
// Rules are an interpreted table keyed by (entity, action). Each rule is an
// ordered list of predicates; the first deny wins, an empty remainder allows.
// Evaluation is stateless, nothing is cached across requests.
package access

import (
	"fmt"

	"github.com/skillforge/backend/internal/models"
)

// Entity is a permission-controlled entity type
type Entity string

const (
	EntityCourse Entity = "course"
	EntityLesson Entity = "lesson"
)

// Action is an operation on an entity
type Action string

const (
	ActionCreate   Action = "create"
	ActionRetrieve Action = "retrieve"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// Actor is the requesting user as seen by the permission rules
type Actor struct {
	ID   int
	Role models.Role
}

// IsModerator reports whether the actor belongs to the moderator group
func (a Actor) IsModerator() bool {
	return a.Role == models.RoleModerator
}

// predicate checks one capability; ownerID is nil for ownerless entities
type predicate func(actor Actor, ownerID *int) error

// notModerator denies moderators; they may not author or remove content
func notModerator(actor Actor, _ *int) error {
	if actor.IsModerator() {
		return fmt.Errorf("moderators do not have rights to perform this action")
	}
	return nil
}

// owner denies everyone but the recorded owner
func owner(actor Actor, ownerID *int) error {
	if ownerID == nil || *ownerID != actor.ID {
		return fmt.Errorf("you do not have rights to manage this entity")
	}
	return nil
}

// moderatorOrOwner allows moderators and the recorded owner
func moderatorOrOwner(actor Actor, ownerID *int) error {
	if actor.IsModerator() {
		return nil
	}
	if ownerID != nil && *ownerID == actor.ID {
		return nil
	}
	return fmt.Errorf("you do not have rights to access this entity")
}

type ruleKey struct {
	entity Entity
	action Action
}

// rules maps (entity, action) to its ordered predicate list
var rules = map[ruleKey][]predicate{
	{EntityCourse, ActionCreate}:   {notModerator},
	{EntityCourse, ActionRetrieve}: {moderatorOrOwner},
	{EntityCourse, ActionUpdate}:   {moderatorOrOwner},
	{EntityCourse, ActionDelete}:   {notModerator, owner},
	{EntityLesson, ActionCreate}:   {notModerator},
	{EntityLesson, ActionRetrieve}: {moderatorOrOwner},
	{EntityLesson, ActionUpdate}:   {moderatorOrOwner},
	{EntityLesson, ActionDelete}:   {notModerator, owner},
}

// Check evaluates whether actor may perform action on an entity owned by
// ownerID. It returns nil when allowed and a denial error otherwise; the
// caller is responsible for resolving the target first, so absence surfaces
// as not-found rather than a denial.
func Check(actor Actor, entity Entity, action Action, ownerID *int) error {
	preds, ok := rules[ruleKey{entity, action}]
	if !ok {
		return fmt.Errorf("no permission rule for %s %s", action, entity)
	}

	for _, pred := range preds {
		if err := pred(actor, ownerID); err != nil {
			return err
		}
	}
	return nil
}
