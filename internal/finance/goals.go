package finance

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quangdm/finvi/internal/models"
)

func (s *Store) AddGoal(ctx context.Context, input models.GoalCreate) (models.Goal, error) {
	if input.TargetAmount.IsNegative() {
		return models.Goal{}, invalid("targetAmount", ErrNegativeAmount)
	}
	if input.CurrentAmount.IsNegative() {
		return models.Goal{}, invalid("currentAmount", ErrNegativeAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goal := models.Goal{
		ID:            uuid.New(),
		Name:          input.Name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: clampToTarget(input.CurrentAmount, input.TargetAmount),
		Deadline:      input.Deadline,
	}
	next := append(slices.Clone(s.goals), goal)
	if err := s.save(ctx, slotGoals, next); err != nil {
		return models.Goal{}, err
	}
	s.goals = next
	return enrichGoal(goal), nil
}

// UpdateGoal applies a partial update. A CurrentAmount above the target is
// clamped, never rejected.
func (s *Store) UpdateGoal(ctx context.Context, id uuid.UUID, update models.GoalUpdate) (models.Goal, error) {
	if update.TargetAmount != nil && update.TargetAmount.IsNegative() {
		return models.Goal{}, invalid("targetAmount", ErrNegativeAmount)
	}
	if update.CurrentAmount != nil && update.CurrentAmount.IsNegative() {
		return models.Goal{}, invalid("currentAmount", ErrNegativeAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.goals, func(g models.Goal) bool { return g.ID == id })
	if idx < 0 {
		return models.Goal{}, ErrNotFound
	}

	goal := s.goals[idx]
	if update.Name != nil {
		goal.Name = *update.Name
	}
	if update.TargetAmount != nil {
		goal.TargetAmount = *update.TargetAmount
	}
	if update.CurrentAmount != nil {
		goal.CurrentAmount = *update.CurrentAmount
	}
	if update.Deadline != nil {
		goal.Deadline = update.Deadline
	}
	goal.CurrentAmount = clampToTarget(goal.CurrentAmount, goal.TargetAmount)

	next := slices.Clone(s.goals)
	next[idx] = goal
	if err := s.save(ctx, slotGoals, next); err != nil {
		return models.Goal{}, err
	}
	s.goals = next
	return enrichGoal(goal), nil
}

// AddGoalFunds adds to a goal's saved amount, clamped to the target.
func (s *Store) AddGoalFunds(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (models.Goal, error) {
	if amount.IsNegative() {
		return models.Goal{}, invalid("amount", ErrNegativeAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.goals, func(g models.Goal) bool { return g.ID == id })
	if idx < 0 {
		return models.Goal{}, ErrNotFound
	}

	goal := s.goals[idx]
	goal.CurrentAmount = clampToTarget(goal.CurrentAmount.Add(amount), goal.TargetAmount)

	next := slices.Clone(s.goals)
	next[idx] = goal
	if err := s.save(ctx, slotGoals, next); err != nil {
		return models.Goal{}, err
	}
	s.goals = next
	return enrichGoal(goal), nil
}

func (s *Store) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.goals, func(g models.Goal) bool { return g.ID == id })
	if idx < 0 {
		return ErrNotFound
	}

	next := slices.Delete(slices.Clone(s.goals), idx, idx+1)
	if err := s.save(ctx, slotGoals, next); err != nil {
		return err
	}
	s.goals = next
	return nil
}

func (s *Store) Goals() []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals := make([]models.Goal, 0, len(s.goals))
	for _, goal := range s.goals {
		goals = append(goals, enrichGoal(goal))
	}
	return goals
}

func clampToTarget(current, target decimal.Decimal) decimal.Decimal {
	if current.GreaterThan(target) {
		return target
	}
	return current
}

func enrichGoal(goal models.Goal) models.Goal {
	if goal.TargetAmount.GreaterThan(decimal.Zero) {
		progress := goal.CurrentAmount.Div(goal.TargetAmount).Mul(decimal.NewFromInt(100)).InexactFloat64()
		if progress > 100 {
			progress = 100
		}
		goal.Progress = progress
	}
	return goal
}
