package apest

// pair keys the compatibility table by primary and secondary gift.
type pair struct {
	primary   Dimension
	secondary Dimension
}

// compatibility maps a (primary, secondary) gift pairing to the dimensions
// that complement it. The table is exhaustive over all ordered pairs,
// including the degenerate primary == secondary case that arises when only
// one dimension has scoreable data.
var compatibility = map[pair][]Dimension{
	{Apostolic, Apostolic}:    {Shepherding, Teaching},
	{Apostolic, Prophetic}:    {Shepherding, Teaching},
	{Apostolic, Evangelistic}: {Shepherding, Teaching},
	{Apostolic, Shepherding}:  {Teaching, Prophetic},
	{Apostolic, Teaching}:     {Shepherding, Evangelistic},

	{Prophetic, Apostolic}:    {Shepherding, Evangelistic},
	{Prophetic, Prophetic}:    {Shepherding, Evangelistic},
	{Prophetic, Evangelistic}: {Shepherding, Teaching},
	{Prophetic, Shepherding}:  {Evangelistic, Apostolic},
	{Prophetic, Teaching}:     {Evangelistic, Shepherding},

	{Evangelistic, Apostolic}:    {Teaching, Shepherding},
	{Evangelistic, Prophetic}:    {Teaching, Shepherding},
	{Evangelistic, Evangelistic}: {Teaching, Shepherding},
	{Evangelistic, Shepherding}:  {Teaching, Apostolic},
	{Evangelistic, Teaching}:     {Shepherding, Apostolic},

	{Shepherding, Apostolic}:    {Teaching, Evangelistic},
	{Shepherding, Prophetic}:    {Teaching, Evangelistic},
	{Shepherding, Evangelistic}: {Teaching, Apostolic},
	{Shepherding, Shepherding}:  {Teaching, Evangelistic},
	{Shepherding, Teaching}:     {Evangelistic, Apostolic},

	{Teaching, Apostolic}:    {Shepherding, Evangelistic},
	{Teaching, Prophetic}:    {Shepherding, Evangelistic},
	{Teaching, Evangelistic}: {Shepherding, Apostolic},
	{Teaching, Shepherding}:  {Evangelistic, Apostolic},
	{Teaching, Teaching}:     {Shepherding, Evangelistic},
}

// Complementary returns the complementary dimensions for a primary and
// secondary gift pairing. The returned slice is a copy.
func Complementary(primary, secondary Dimension) []Dimension {
	dims, ok := compatibility[pair{primary, secondary}]
	if !ok {
		return nil
	}
	out := make([]Dimension, len(dims))
	copy(out, dims)
	return out
}
