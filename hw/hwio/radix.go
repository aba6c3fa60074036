package hwio

import "fmt"

// radixTree is a 2-level lookup table mapping each 16-bit address to the
// BankIO8 that owns it. Second level nodes cover 256 addresses and are only
// allocated when something gets mapped in them.
type radixTree struct {
	nodes [256]*[256]BankIO8
}

func (rt *radixTree) Search(addr uint16) BankIO8 {
	node := rt.nodes[addr>>8]
	if node == nil {
		return nil
	}
	return node[addr&0xFF]
}

func (rt *radixTree) InsertRange(begin, end uint16, io BankIO8) error {
	if end < begin {
		return fmt.Errorf("invalid range [%04x-%04x]", begin, end)
	}
	for addr := uint32(begin); addr <= uint32(end); addr++ {
		if prev := rt.Search(uint16(addr)); prev != nil && prev != io {
			return fmt.Errorf("address %04x already mapped", addr)
		}
	}
	for addr := uint32(begin); addr <= uint32(end); addr++ {
		node := rt.nodes[addr>>8]
		if node == nil {
			node = new([256]BankIO8)
			rt.nodes[addr>>8] = node
		}
		node[addr&0xFF] = io
	}
	return nil
}

func (rt *radixTree) RemoveRange(begin, end uint16) {
	for addr := uint32(begin); addr <= uint32(end); addr++ {
		if node := rt.nodes[addr>>8]; node != nil {
			node[addr&0xFF] = nil
		}
	}
}
