package gift

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cadoz/internal/catalog"
	"cadoz/internal/platform"
)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	var options []catalog.Item
	for i := 0; i < 12; i++ {
		options = append(options, catalog.Item{
			ID:       "choc-" + string(rune('a'+i)),
			Name:     "Chocolate " + string(rune('A'+i)),
			Price:    10,
			Category: catalog.CategoryChocolates,
			Tags:     []string{string(rune('z' - i))},
		})
	}
	options = append(options, kraftBox, heartBox, tissue, gummies)
	c, err := catalog.New(nil, options)
	require.NoError(t, err)
	return c
}

func newTestPresenter(t *testing.T) (*Presenter, *Container) {
	t.Helper()
	container := NewContainer(newMemory(t), newTestReducer(), zap.NewNop())
	return NewPresenter(newTestCatalog(t), container), container
}

func TestViewGroupsAndSorts(t *testing.T) {
	p, _ := newTestPresenter(t)
	v, err := p.View(StepChocolates)
	require.NoError(t, err)

	require.Len(t, v.Groups, 2)
	assert.Len(t, v.Groups[0], 10)
	assert.Len(t, v.Groups[1], 2)
	assert.Equal(t, "choc-l", v.Groups[0][0].Item.ID)
	assert.False(t, v.CanPrev)
	assert.True(t, v.CanNext)
	assert.Equal(t, 0, v.Index)
	assert.Equal(t, 6, v.StepCount)
}

func TestViewSummaryHasNoGroups(t *testing.T) {
	p, _ := newTestPresenter(t)
	v, err := p.View(StepSummary)
	require.NoError(t, err)
	assert.Empty(t, v.Groups)
	assert.True(t, v.CanPrev)
	assert.False(t, v.CanNext)
}

func TestChooseContentStepAddsToCart(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPresenter(t)

	_, note, err := p.Choose(ctx, StepChocolates, "choc-a")
	require.NoError(t, err)
	assert.Equal(t, LevelSuccess, note.Level)
	assert.Contains(t, note.Message, "Chocolate A")

	state, _, err := p.Choose(ctx, StepChocolates, "choc-a")
	require.NoError(t, err)
	require.Len(t, state.Cart, 1)
	assert.Equal(t, 2, state.Cart[0].Quantity)
}

func TestChooseSingleSelectToggles(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPresenter(t)

	state, _, err := p.Choose(ctx, StepBox, kraftBox.ID)
	require.NoError(t, err)
	require.NotNil(t, state.SelectedBox)

	v, err := p.View(StepBox)
	require.NoError(t, err)
	assert.Equal(t, kraftBox.ID, v.SelectedID)

	state, note, err := p.Choose(ctx, StepBox, kraftBox.ID)
	require.NoError(t, err)
	assert.Nil(t, state.SelectedBox)
	assert.Contains(t, note.Message, "removed")

	state, _, err = p.Choose(ctx, StepWrap, tissue.ID)
	require.NoError(t, err)
	require.NotNil(t, state.SelectedWrap)
	assert.Nil(t, state.SelectedBox)
}

func TestChooseRejections(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPresenter(t)

	tests := []struct {
		name string
		step Step
		item string
		code platform.StatusCode
	}{
		{"summary", StepSummary, "choc-a", platform.StatusFailedPrecondition},
		{"unknown step", Step("nope"), "choc-a", platform.StatusInvalidArgument},
		{"missing item", StepChocolates, "ghost", platform.StatusNotFound},
		{"wrong category", StepBox, "choc-a", platform.StatusInvalidArgument},
		{"blank item", StepCandies, " ", platform.StatusInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := p.Choose(ctx, tt.step, tt.item)
			cmdErr, ok := platform.AsCommandError(err)
			require.True(t, ok, "expected CommandError, got %v", err)
			assert.Equal(t, tt.code, cmdErr.Code)
		})
	}
}

func TestNextPrevClamp(t *testing.T) {
	ctx := context.Background()
	p, c := newTestPresenter(t)

	assert.Equal(t, FirstStep(), p.Prev(ctx).CurrentStep)
	for i := 0; i < 8; i++ {
		p.Next(ctx)
	}
	assert.Equal(t, StepSummary, c.State().CurrentStep)
	assert.Equal(t, StepWrap, p.Prev(ctx).CurrentStep)
}

func TestSetEntryQuantity(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPresenter(t)
	state, _, err := p.Choose(ctx, StepCandies, gummies.ID)
	require.NoError(t, err)
	entryID := state.Cart[0].ID

	state, err = p.SetEntryQuantity(ctx, entryID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, state.Cart[0].Quantity)

	_, err = p.SetEntryQuantity(ctx, entryID, 0)
	assert.Error(t, err)

	_, err = p.SetEntryQuantity(ctx, "missing", 2)
	cmdErr, ok := platform.AsCommandError(err)
	require.True(t, ok)
	assert.Equal(t, platform.StatusNotFound, cmdErr.Code)

	state, note := p.RemoveEntry(ctx, entryID)
	assert.Empty(t, state.Cart)
	assert.Equal(t, LevelError, note.Level)
}

// slowReducer widens the window between reading and replacing the state.
type slowReducer struct {
	Reducer
}

func (r slowReducer) Reduce(state State, action Action) State {
	time.Sleep(2 * time.Millisecond)
	return r.Reducer.Reduce(state, action)
}

func newSlowPresenter(t *testing.T) (*Presenter, *Container) {
	t.Helper()
	container := NewContainer(newMemory(t), slowReducer{newTestReducer()}, zap.NewNop())
	return NewPresenter(newTestCatalog(t), container), container
}

func TestConcurrentNextAppliesEveryMove(t *testing.T) {
	ctx := context.Background()
	p, container := newSlowPresenter(t)

	var wg sync.WaitGroup
	for i := 0; i < len(Steps())-1; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Next(ctx)
		}()
	}
	wg.Wait()
	assert.Equal(t, StepSummary, container.State().CurrentStep)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Prev(ctx)
		}()
	}
	wg.Wait()
	assert.Equal(t, StepDecorations, container.State().CurrentStep)
}

func TestConcurrentChooseNotifiesWhatApplied(t *testing.T) {
	ctx := context.Background()
	p, container := newSlowPresenter(t)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		selected int
		removed  int
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, note, err := p.Choose(ctx, StepBox, kraftBox.ID)
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			if strings.HasSuffix(note.Message, "selected") {
				selected++
			} else {
				removed++
			}
		}()
	}
	wg.Wait()

	assert.Nil(t, container.State().SelectedBox)
	assert.Equal(t, 1, selected)
	assert.Equal(t, 1, removed)
}
