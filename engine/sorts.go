package engine

// The five algorithms below share one animation contract: every mutation
// that changes element order is followed by exactly one emit naming the
// touched indices. A mutation that leaves the array unchanged (a
// self-swap, a write-back of an identical value) emits nothing, so a
// fully sorted input produces zero frames for every variant except the
// single swap-free verification pass bubble sort always makes.

// bubbleSort swaps adjacent out-of-order pairs until a full pass
// performs no swap.
func (e *Engine) bubbleSort(st *State) {
	arr := st.arr
	for {
		swapped := false
		for j := 0; j < len(arr)-1; j++ {
			if arr[j] > arr[j+1] {
				arr[j], arr[j+1] = arr[j+1], arr[j]
				swapped = true
				e.emit(st, j, j+1)
			}
		}
		if !swapped {
			return
		}
	}
}

// selectionSort scans the unsorted suffix for its minimum. Positions
// where the minimum is already in place produce no frame.
func (e *Engine) selectionSort(st *State) {
	arr := st.arr
	for i := 0; i < len(arr)-1; i++ {
		min := i
		for j := i + 1; j < len(arr); j++ {
			if arr[j] < arr[min] {
				min = j
			}
		}
		if min != i {
			arr[i], arr[min] = arr[min], arr[i]
			e.emit(st, i, min)
		}
	}
}

// insertionSort shifts elements greater than the key rightward one slot
// at a time, framing each shift with the adjacent pair. When shifting
// occurred the key is placed afterward with one settle frame on its
// final index; with no shifts the slot already holds the key and no
// extra frame is emitted.
func (e *Engine) insertionSort(st *State) {
	arr := st.arr
	for i := 1; i < len(arr); i++ {
		key := arr[i]
		j := i - 1
		for j >= 0 && arr[j] > key {
			arr[j+1] = arr[j]
			e.emit(st, j, j+1)
			j--
		}
		if arr[j+1] != key {
			arr[j+1] = key
			e.emit(st, j+1)
		}
	}
}

// quickSort recurses on Lomuto partitions with the last element as
// pivot.
func (e *Engine) quickSort(st *State, lo, hi int) {
	if lo >= hi {
		return
	}
	p := e.partition(st, lo, hi)
	e.quickSort(st, lo, p-1)
	e.quickSort(st, p+1, hi)
}

func (e *Engine) partition(st *State, lo, hi int) int {
	arr := st.arr
	pivot := arr[hi]
	i := lo - 1
	for j := lo; j < hi; j++ {
		if arr[j] < pivot {
			i++
			if i != j {
				arr[i], arr[j] = arr[j], arr[i]
				e.emit(st, i, j)
			}
		}
	}
	if i+1 != hi {
		arr[i+1], arr[hi] = arr[hi], arr[i+1]
		e.emit(st, i+1, hi)
	}
	return i + 1
}

// mergeSort recurses top-down and merges through an auxiliary copy,
// framing each write-back that changes a slot's value.
func (e *Engine) mergeSort(st *State, lo, hi int) {
	if lo >= hi {
		return
	}
	mid := lo + (hi-lo)/2
	e.mergeSort(st, lo, mid)
	e.mergeSort(st, mid+1, hi)
	e.merge(st, lo, mid, hi)
}

func (e *Engine) merge(st *State, lo, mid, hi int) {
	arr := st.arr
	tmp := make([]int, hi-lo+1)
	copy(tmp, arr[lo:hi+1])

	i, j := 0, mid-lo+1
	for k := lo; k <= hi; k++ {
		var v int
		switch {
		case i > mid-lo:
			v = tmp[j]
			j++
		case j > hi-lo:
			v = tmp[i]
			i++
		case tmp[j] < tmp[i]:
			v = tmp[j]
			j++
		default:
			v = tmp[i]
			i++
		}
		if arr[k] != v {
			arr[k] = v
			e.emit(st, k)
		}
	}
}
