package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"team-planner/coverage"
	"team-planner/game"
	"team-planner/types"
)

func TestColName(t *testing.T) {
	t.Parallel()

	tests := map[int]string{0: "", 1: "A", 26: "Z", 27: "AA", 52: "AZ", 53: "BA"}
	for n, want := range tests {
		assert.Equal(t, want, colName(n), "col %d", n)
	}
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	r := game.NewRoster()
	_, err := r.Assign(2, game.Pokemon{ID: 25, Name: "pikachu", Types: []types.Type{types.Electric}})
	require.NoError(t, err)
	_, err = r.Assign(4, game.Pokemon{ID: 130, Name: "gyarados", Types: []types.Type{types.Water, types.Flying}})
	require.NoError(t, err)
	p := 90
	r.AddMove(2, game.Move{Name: "surf", Type: types.Water, Power: &p})
	nick := "Sparky"
	require.NoError(t, r.Update(2, game.MemberPatch{Nickname: &nick, HeldItem: &game.Item{Name: "light-ball"}}))

	path := filepath.Join(t.TempDir(), "out", "team.xlsx")
	require.NoError(t, WriteXLSX(path, r, coverage.Aggregate(r)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetRoster, SheetOffensive, SheetDefensive}, f.GetSheetList())

	rows, err := f.GetRows(SheetRoster)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Move 4", rows[0][9])
	assert.Equal(t, []string{"3", "Sparky", "pikachu", "electric", "hardy", "light-ball", "surf"}, rows[1])
	assert.Equal(t, "water/flying", rows[2][3])

	v, err := f.GetCellValue(SheetOffensive, "B3")
	require.NoError(t, err)
	assert.Equal(t, "1", v, "surf hits fire")

	rows, err = f.GetRows(SheetDefensive)
	require.NoError(t, err)
	require.Len(t, rows, types.NumTypes+1)
	// Electric row: gyarados weak, pikachu resists.
	electric := rows[int(types.Electric)+1]
	assert.Equal(t, "electric", electric[0])
	assert.Equal(t, "gyarados", electric[1])
	assert.Equal(t, "Sparky", electric[2])
	assert.Equal(t, "1", electric[4])
}
