package vm

import "fmt"

// defaultPageSize mirrors the page granularity the paged memory model was
// tuned against; pages are allocated lazily so a multi-million-cell image
// footprint never costs more than the pages actually touched.
const defaultPageSize = 4096

// memoryLimitError indicates that a load or store reached past the
// configured image size.
type memoryLimitError struct {
	addr int32
	op   string
}

func (e memoryLimitError) Error() string {
	return fmt.Sprintf("memory limit exceeded by %v @%v", e.op, e.addr)
}

// memory is the VM's flat cell-addressed memory: a sequence of signed
// 32-bit cells indexed 0..limit, backed by lazily allocated fixed-size
// pages keyed by page number, so large images (spec.md Section 3's
// IMAGE_SIZE) don't require one giant contiguous allocation up front.
//
// Adapted from the paged Ints/PagedCore model (internal/mem): the
// allocate-on-touch, implicit-zero-for-unallocated-pages behavior carries
// over, simplified to page-number keying rather than a sorted base-address
// index, and narrowed to int32 cells to match the VM's 32-bit cell model
// exactly rather than widening to the host's native int size.
type memory struct {
	pageSize uint
	limit    uint
	pages    map[uint][]int32
}

func newMemory(limit uint) *memory {
	return &memory{pageSize: defaultPageSize, limit: limit, pages: make(map[uint][]int32)}
}

func (m *memory) checkLimit(addr uint, op string) error {
	if m.limit != 0 && addr > m.limit {
		return memoryLimitError{int32(addr), op}
	}
	return nil
}

// Load reads a single cell. Unallocated pages read back as zero.
func (m *memory) Load(addr uint) (int32, error) {
	if err := m.checkLimit(addr, "load"); err != nil {
		return 0, err
	}
	page, ok := m.pages[addr/m.pageSize]
	if !ok {
		return 0, nil
	}
	return page[addr%m.pageSize], nil
}

// Stor writes a single cell, allocating its page if necessary.
func (m *memory) Stor(addr uint, val int32) error {
	if err := m.checkLimit(addr, "stor"); err != nil {
		return err
	}
	pageID := addr / m.pageSize
	page, ok := m.pages[pageID]
	if !ok {
		page = make([]int32, m.pageSize)
		m.pages[pageID] = page
	}
	page[addr%m.pageSize] = val
	return nil
}

// StorN stores consecutive values starting at addr, used by the image
// loader to copy the boot image in one pass.
func (m *memory) StorN(addr uint, values ...int32) error {
	for i, v := range values {
		if err := m.Stor(addr+uint(i), v); err != nil {
			return err
		}
	}
	return nil
}
