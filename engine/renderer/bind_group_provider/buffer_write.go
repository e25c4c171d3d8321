package bind_group_provider

// BufferWrite is one queued write into the buffer at Binding on Provider, starting at Offset bytes.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Valid reports whether the write targets a buffer that exists and carries data.
//
// Returns:
//   - bool: true if the write can be submitted
func (w BufferWrite) Valid() bool {
	return w.Provider != nil && len(w.Data) > 0 && w.Provider.Buffer(w.Binding) != nil
}
