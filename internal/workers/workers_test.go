package workers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkers_RunsEveryStepInOrder(t *testing.T) {
	var steps []string
	step := func(name string) Worker {
		return WorkerFunc(func() { steps = append(steps, name) })
	}

	NewWorkers(step("stop job"), step("lock local"), step("lock remote"), step("close pool")).Run()

	assert.Equal(t, []string{"stop job", "lock local", "lock remote", "close pool"}, steps)
}

func TestWorkers_RunsEachStepOnce(t *testing.T) {
	counts := make([]int, 3)
	ws := make([]Worker, len(counts))
	for i := range counts {
		ws[i] = WorkerFunc(func() { counts[i]++ })
	}

	NewWorkers(ws...).Run()

	assert.Equal(t, []int{1, 1, 1}, counts)
}

func TestWorkers_EmptySequence(t *testing.T) {
	assert.NotPanics(t, func() { NewWorkers().Run() })
	assert.NotPanics(t, func() { (&Workers{}).Run() })
}
