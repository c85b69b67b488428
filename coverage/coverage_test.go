package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-planner/game"
	"team-planner/types"
)

func power(v int) *int { return &v }

func mon(id int, name string, ts ...types.Type) game.Pokemon {
	return game.Pokemon{ID: id, Name: name, Types: ts}
}

func TestTally_WaterMoves(t *testing.T) {
	t.Parallel()

	moves := []game.Move{
		{Name: "surf", Type: types.Water, Power: power(90)},
		{Name: "water-gun", Type: types.Water, Power: power(40)},
	}
	got := Tally(moves)

	require.Len(t, got, types.NumTypes)
	assert.Equal(t, 2, got[types.Fire])
	assert.Equal(t, 2, got[types.Ground])
	assert.Equal(t, 2, got[types.Rock])
	assert.Equal(t, 0, got[types.Water])
	assert.Equal(t, 0, got[types.Grass])
	assert.Equal(t, 0, got[types.Normal])
}

func TestTally_StatusMoves(t *testing.T) {
	t.Parallel()

	moves := []game.Move{
		{Name: "will-o-wisp", Type: types.Fire, DamageClass: "status"},
		{Name: "flamethrower", Type: types.Fire, Power: power(90), DamageClass: "special"},
	}

	assert.Equal(t, 2, Tally(moves)[types.Grass], "status moves count by default")
	assert.Equal(t, 1, Tally(moves, ExcludeStatusMoves(true))[types.Grass])
	assert.Equal(t, 2, Tally(moves, ExcludeStatusMoves(false))[types.Grass])
}

func TestAggregate_EmptyRoster(t *testing.T) {
	t.Parallel()

	res := Aggregate(game.NewRoster())

	assert.True(t, res.Empty())
	require.Len(t, res.Offensive, types.NumTypes)
	require.Len(t, res.Defensive, types.NumTypes)
	for _, ty := range types.All {
		assert.Zero(t, res.Offensive[ty], ty.String())
		d := res.Defensive[ty]
		assert.NotNil(t, d.Weaknesses)
		assert.Empty(t, d.Weaknesses)
		assert.Empty(t, d.Resistances)
		assert.Empty(t, d.Immunities)
	}
	assert.Equal(t, 1, res.MaxOffensive())
	assert.Len(t, res.Uncovered(), types.NumTypes)
}

func TestAggregate_SingleElectric(t *testing.T) {
	t.Parallel()

	r := game.NewRoster()
	_, err := r.Assign(0, mon(25, "pikachu", types.Electric))
	require.NoError(t, err)

	res := Aggregate(r)
	assert.False(t, res.Empty())

	assert.Equal(t, []string{"pikachu"}, res.Defensive[types.Ground].Weaknesses)
	assert.Empty(t, res.Defensive[types.Ground].Immunities)
	assert.Empty(t, res.Defensive[types.Ground].Resistances)

	for _, atk := range []types.Type{types.Electric, types.Flying, types.Steel} {
		assert.Equalf(t, []string{"pikachu"}, res.Defensive[atk].Resistances, "resists %s", atk)
	}
	for _, atk := range []types.Type{types.Fire, types.Water, types.Normal, types.Ice} {
		d := res.Defensive[atk]
		assert.Emptyf(t, d.Weaknesses, "%s", atk)
		assert.Emptyf(t, d.Resistances, "%s", atk)
		assert.Emptyf(t, d.Immunities, "%s", atk)
	}
	for _, n := range res.Offensive {
		assert.Zero(t, n)
	}
}

func TestAggregate_DualTypes(t *testing.T) {
	t.Parallel()

	r := game.NewRoster()
	_, _ = r.Assign(0, mon(130, "gyarados", types.Water, types.Flying))

	res := Aggregate(r)
	assert.Equal(t, []string{"gyarados"}, res.Defensive[types.Electric].Weaknesses)
	assert.Equal(t, []string{"gyarados"}, res.Defensive[types.Rock].Weaknesses)
	assert.Equal(t, []string{"gyarados"}, res.Defensive[types.Ground].Immunities)
	assert.Equal(t, []string{"gyarados"}, res.Defensive[types.Steel].Resistances)
	assert.Equal(t, []string{"gyarados"}, res.Defensive[types.Fighting].Resistances)

	// Grass: 2x against water, 0.5x against flying.
	g := res.Defensive[types.Grass]
	assert.Empty(t, g.Weaknesses)
	assert.Empty(t, g.Resistances)
	assert.Empty(t, g.Immunities)
}

func TestAggregate_SlotOrderAndSums(t *testing.T) {
	t.Parallel()

	r := game.NewRoster()
	_, _ = r.Assign(4, mon(6, "charizard", types.Fire, types.Flying))
	_, _ = r.Assign(1, mon(25, "pikachu", types.Electric))
	_, _ = r.Assign(3, mon(448, "lucario", types.Fighting, types.Steel))
	nick := "Zappy"
	require.NoError(t, r.Update(1, game.MemberPatch{Nickname: &nick}))

	r.AddMove(1, game.Move{Name: "thunderbolt", Type: types.Electric, Power: power(90)})
	r.AddMove(1, game.Move{Name: "surf", Type: types.Water, Power: power(90)})
	r.AddMove(4, game.Move{Name: "air-slash", Type: types.Flying, Power: power(75)})
	r.AddMove(4, game.Move{Name: "hurricane", Type: types.Flying, Power: power(110)})
	r.AddMove(3, game.Move{Name: "close-combat", Type: types.Fighting, Power: power(120)})

	res := Aggregate(r)

	// Water is hit by thunderbolt only; flying by thunderbolt; grass by both flying moves.
	assert.Equal(t, 1, res.Offensive[types.Water])
	assert.Equal(t, 1, res.Offensive[types.Flying])
	assert.Equal(t, 2, res.Offensive[types.Grass])
	// Fighting hits normal, ice, rock, dark, steel; flying hits fighting and bug too.
	assert.Equal(t, 1, res.Offensive[types.Steel])
	assert.Equal(t, 2, res.Offensive[types.Fighting])
	assert.Equal(t, 1, res.Offensive[types.Fire])
	assert.Equal(t, 2, res.Offensive[types.Rock])
	assert.Equal(t, 2, res.MaxOffensive())

	// Ground: pikachu weak, lucario weak, charizard immune. Slot order, nickname used.
	assert.Equal(t, []string{"Zappy", "lucario"}, res.Defensive[types.Ground].Weaknesses)
	assert.Equal(t, []string{"charizard"}, res.Defensive[types.Ground].Immunities)
	assert.Equal(t, []types.Type{types.Ground}, res.SharedWeaknesses(2))
}

func TestAggregate_Idempotent(t *testing.T) {
	t.Parallel()

	r := game.NewRoster()
	_, _ = r.Assign(0, mon(94, "gengar", types.Ghost, types.Poison))
	_, _ = r.Assign(2, mon(248, "tyranitar", types.Rock, types.Dark))
	r.AddMove(0, game.Move{Name: "shadow-ball", Type: types.Ghost, Power: power(80)})
	r.AddMove(2, game.Move{Name: "stone-edge", Type: types.Rock, Power: power(100)})

	first := Aggregate(r)
	second := Aggregate(r)
	assert.Equal(t, first, second)
}

func TestMatchups(t *testing.T) {
	t.Parallel()

	m := Matchups([]types.Type{types.Grass, types.Flying})

	require.NotEmpty(t, m.WeakTo)
	assert.Equal(t, types.Fire, m.WeakTo[0].Type)
	var ice Entry
	for _, e := range m.WeakTo {
		if e.Type == types.Ice {
			ice = e
		}
	}
	assert.Equal(t, types.Quad, ice.Multiplier)

	immune := make([]types.Type, 0, len(m.ImmuneTo))
	for _, e := range m.ImmuneTo {
		immune = append(immune, e.Type)
	}
	assert.Equal(t, []types.Type{types.Ground}, immune)

	var grass Entry
	for _, e := range m.ResistantTo {
		if e.Type == types.Grass {
			grass = e
		}
	}
	assert.Equal(t, types.Quarter, grass.Multiplier)
}
