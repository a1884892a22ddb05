package matmul

// Number is the element type of a matrix, input or accumulator.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// view is a square n×n window into a row-major buffer whose rows are stride
// elements apart. Splitting a view only narrows the index range, so the four
// quadrants of a view share its buffer but never share an element.
type view[T any] struct {
	data   []T
	stride int
	row    int
	col    int
	n      int
}

func newView[T any](data []T, n int) view[T] {
	return view[T]{data: data, stride: n, n: n}
}

func (v view[T]) index(i, j int) int {
	return (v.row+i)*v.stride + v.col + j
}

// quadrants splits v at its midpoint into top-left, top-right, bottom-left
// and bottom-right.
func (v view[T]) quadrants() (q11, q12, q21, q22 view[T]) {
	h := v.n / 2
	q11 = view[T]{data: v.data, stride: v.stride, row: v.row, col: v.col, n: h}
	q12 = view[T]{data: v.data, stride: v.stride, row: v.row, col: v.col + h, n: h}
	q21 = view[T]{data: v.data, stride: v.stride, row: v.row + h, col: v.col, n: h}
	q22 = view[T]{data: v.data, stride: v.stride, row: v.row + h, col: v.col + h, n: h}
	return q11, q12, q21, q22
}

// quadrant is one result quadrant with the two products accumulated into it:
// r += a1·b1 + a2·b2.
type quadrant[T, R Number] struct {
	r      view[R]
	a1, b1 view[T]
	a2, b2 view[T]
}

func split[T, R Number](a, b view[T], r view[R]) [4]quadrant[T, R] {
	a11, a12, a21, a22 := a.quadrants()
	b11, b12, b21, b22 := b.quadrants()
	r11, r12, r21, r22 := r.quadrants()

	return [4]quadrant[T, R]{
		{r: r11, a1: a11, b1: b11, a2: a12, b2: b21},
		{r: r12, a1: a11, b1: b12, a2: a12, b2: b22},
		{r: r21, a1: a21, b1: b11, a2: a22, b2: b21},
		{r: r22, a1: a21, b1: b12, a2: a22, b2: b22},
	}
}
