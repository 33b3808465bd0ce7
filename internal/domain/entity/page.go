package entity

// Screenshot is an encoded capture of the page under test.
type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}
