package analysis

import (
	"sort"

	"github.com/lunixbochs/smkm/models"
)

type Block struct {
	Start, End uint64
	Ins        []models.Ins
	Succ       []uint64
}

func (b *Block) Contains(addr uint64) bool {
	return addr >= b.Start && addr < b.End
}

func (b *Block) Last() models.Ins {
	return b.Ins[len(b.Ins)-1]
}

type Blocks []*Block

func (b Blocks) Find(addr uint64) *Block {
	i := sort.Search(len(b), func(i int) bool { return b[i].End > addr })
	if i < len(b) && b[i].Contains(addr) {
		return b[i]
	}
	return nil
}

// FindBlocks splits a linear disassembly into basic blocks. Branch targets outside the
// instruction range are dropped from the successor lists.
func FindBlocks(dis []models.Ins) Blocks {
	if len(dis) == 0 {
		return nil
	}
	start, end := dis[0].Addr(), insEnd(dis[len(dis)-1])
	inRange := func(addr uint64) bool { return addr >= start && addr < end }

	leaders := map[uint64]bool{start: true}
	for _, ins := range dis {
		if !isBranch(ins) {
			continue
		}
		if target, ok := directTarget(ins); ok && inRange(target) {
			leaders[target] = true
		}
		leaders[insEnd(ins)] = true
	}

	var blocks Blocks
	var cur *Block
	for _, ins := range dis {
		if cur == nil || leaders[ins.Addr()] {
			cur = &Block{Start: ins.Addr()}
			blocks = append(blocks, cur)
		}
		cur.Ins = append(cur.Ins, ins)
		cur.End = insEnd(ins)
	}

	for i, b := range blocks {
		last := b.Last()
		var next uint64
		if i+1 < len(blocks) && blocks[i+1].Start == b.End {
			next = b.End
		}
		switch {
		case isRet(last):
		case isJmp(last):
			if target, ok := directTarget(last); ok && inRange(target) {
				b.Succ = append(b.Succ, target)
			}
		case isCondJump(last):
			if target, ok := directTarget(last); ok && inRange(target) {
				b.Succ = append(b.Succ, target)
			}
			if next != 0 {
				b.Succ = append(b.Succ, next)
			}
		default:
			if next != 0 {
				b.Succ = append(b.Succ, next)
			}
		}
	}
	return blocks
}

// Path returns the shortest chain of blocks from the block at from to the block containing to.
func (b Blocks) Path(from, to uint64) Blocks {
	first, last := b.Find(from), b.Find(to)
	if first == nil || last == nil {
		return nil
	}
	prev := map[*Block]*Block{first: nil}
	queue := []*Block{first}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == last {
			var path Blocks
			for n := cur; n != nil; n = prev[n] {
				path = append(Blocks{n}, path...)
			}
			return path
		}
		for _, addr := range cur.Succ {
			next := b.Find(addr)
			if next == nil {
				continue
			}
			if _, seen := prev[next]; !seen {
				prev[next] = cur
				queue = append(queue, next)
			}
		}
	}
	return nil
}
