package cart

import "encoding/json"

// Encode serializes the cart lines, in order, to the persisted blob form.
// The host integration decides when to call it; nothing persists
// implicitly on mutation.
func (s *Store) Encode() ([]byte, error) {
	return json.Marshal(s.Lines())
}

// Decode parses a persisted blob back into cart lines.
func Decode(data []byte) ([]Line, error) {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Restore replaces the cart content with previously persisted lines. The
// restored lines are taken as-is; the next reconciliation re-clamps them
// against current stock.
func (s *Store) Restore(lines []Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make([]Line, len(lines))
	copy(s.lines, lines)
}
