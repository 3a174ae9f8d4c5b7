package input

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Index   int
	Paths   []string
	Cols    int
	IsBusy  bool
	LogOpen bool
}

// CurrentIndex returns the cursor position in the grid
func (c *ModelContext) CurrentIndex() int {
	return c.Index
}

// TotalItems returns the number of grid cells
func (c *ModelContext) TotalItems() int {
	return len(c.Paths)
}

// Columns returns the grid width in cells
func (c *ModelContext) Columns() int {
	if c.Cols < 1 {
		return 1
	}
	return c.Cols
}

// CurrentPath returns the path under the cursor, or "" for an empty grid
func (c *ModelContext) CurrentPath() string {
	if c.Index < 0 || c.Index >= len(c.Paths) {
		return ""
	}
	return c.Paths[c.Index]
}

// Busy reports whether a batch is running
func (c *ModelContext) Busy() bool {
	return c.IsBusy
}

// ShowingLog reports whether the log popup is open
func (c *ModelContext) ShowingLog() bool {
	return c.LogOpen
}
