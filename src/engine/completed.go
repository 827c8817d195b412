package engine

// completedLog retains terminal orders for audit lookups after they
// leave the live book. It is a bounded fifo: once capacity is reached
// the oldest record is evicted. All access happens under the engine
// lock, so no separate synchronization is needed.
type completedLog struct {
	capacity int
	ids      []string
	byID     map[string]*Order
}

func newCompletedLog(capacity int) *completedLog {
	return &completedLog{
		capacity: capacity,
		ids:      make([]string, 0, capacity),
		byID:     make(map[string]*Order, capacity),
	}
}

func (cl *completedLog) add(o *Order) {
	if _, exists := cl.byID[o.ID]; exists {
		return
	}
	if len(cl.ids) >= cl.capacity {
		oldest := cl.ids[0]
		cl.ids = cl.ids[1:]
		delete(cl.byID, oldest)
	}
	cl.ids = append(cl.ids, o.ID)
	cl.byID[o.ID] = o
}

func (cl *completedLog) get(id string) (*Order, bool) {
	o, ok := cl.byID[id]
	return o, ok
}
