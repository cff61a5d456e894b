package audio

import (
	"runtime"
	"sync/atomic"
)

type eventKind int

const (
	eventStart eventKind = iota
	eventStop
	eventSet
)

// param names an envelope parameter carried by a set event.
type param int

const (
	paramAttack param = iota
	paramDecay
	paramSustain
	paramRelease
	paramAttackShape
	paramReleaseShape
	paramGain
)

// event is a control message crossing from the control context into the
// render context. The offset places it within the next audio buffer; a start
// event may carry a duration in samples after which the gate closes itself.
type event struct {
	kind     eventKind
	offset   int
	param    param
	value    float64
	duration int // samples, -1 for open-ended starts
}

// eventBuffer is a lock-free spsc queue.
type eventBuffer struct {
	events []event
	read   uint32
	write  uint32
}

func newEventBuffer(size int) *eventBuffer {
	if size <= 0 || size&(size-1) != 0 {
		panic("event buffer size must be a power of 2")
	}
	return &eventBuffer{events: make([]event, size)}
}

func (b *eventBuffer) push(ev event) {
	for atomic.LoadUint32(&b.write)-atomic.LoadUint32(&b.read) == uint32(len(b.events)) {
		runtime.Gosched()
	}
	write := atomic.LoadUint32(&b.write)
	b.events[write%uint32(len(b.events))] = ev
	atomic.StoreUint32(&b.write, write+1)
}

// iter consumes events whose offset falls before untilOffset, in push order.
// Passing -1 consumes everything queued.
func (b *eventBuffer) iter(untilOffset int, f func(event)) {
	read := atomic.LoadUint32(&b.read)
	write := atomic.LoadUint32(&b.write)
	if read == write {
		return
	}
	for read != write {
		event := b.events[read%uint32(len(b.events))]
		if event.offset >= untilOffset && untilOffset != -1 {
			break
		}
		f(event)
		read++
	}
	atomic.StoreUint32(&b.read, read)
}
