package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// tolerance on orthonormality and determinant when validating user supplied matrices.
const rotationMatrixEpsilon = 1e-6

// ErrNotRotationMatrix is returned when a matrix is not a proper rotation.
var ErrNotRotationMatrix = errors.New("matrix is not a proper rotation")

// RotationMatrix is a 3x3 matrix in row major order.
// m[3*r + c] is the element in the r'th row and c'th column.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates the rotation matrix from a slice of floats in row major order. The matrix must
// be orthonormal with determinant +1.
func NewRotationMatrix(m []float64) (*RotationMatrix, error) {
	if len(m) != 9 {
		return nil, errors.Errorf("input slice has %d elements, need exactly 9", len(m))
	}
	rm := &RotationMatrix{}
	copy(rm.mat[:], m)
	if err := rm.validate(); err != nil {
		return nil, err
	}
	return rm, nil
}

// NewRotationMatrixFromColumns creates the rotation matrix whose columns are the given basis vectors,
// i.e. the rotation taking the world axes onto x, y and z.
func NewRotationMatrixFromColumns(x, y, z r3.Vector) (*RotationMatrix, error) {
	return NewRotationMatrix([]float64{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	})
}

func (rm *RotationMatrix) validate() error {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			want := 0.
			if r == c {
				want = 1
			}
			if got := rm.Row(r).Dot(rm.Row(c)); !(math.Abs(got-want) <= rotationMatrixEpsilon) {
				return errors.Wrapf(ErrNotRotationMatrix, "rows %d and %d have dot product %f", r, c, got)
			}
		}
	}
	if det := rm.mgl().Det(); !(math.Abs(det-1) <= rotationMatrixEpsilon) {
		return errors.Wrapf(ErrNotRotationMatrix, "determinant is %f", det)
	}
	return nil
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (rm *RotationMatrix) RotationMatrix() *RotationMatrix {
	return rm
}

// Quaternion returns orientation in quaternion representation.
func (rm *RotationMatrix) Quaternion() quat.Number {
	q := mgl64.Mat4ToQuat(rm.mgl().Mat4())
	return Normalize(quat.Number{Real: q.W, Imag: q.X(), Jmag: q.Y(), Kmag: q.Z()})
}

// AxisAngles returns the orientation in axis angle representation.
func (rm *RotationMatrix) AxisAngles() *R4AA {
	return QuatToR4AA(rm.Quaternion())
}

// At returns the element at the given row and column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[row*3+col]
}

// Row returns the r'th row of the matrix.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.At(row, 0), Y: rm.At(row, 1), Z: rm.At(row, 2)}
}

// Col returns the c'th column of the matrix, i.e. the image of the c'th world axis.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.At(0, col), Y: rm.At(1, col), Z: rm.At(2, col)}
}

// Mul returns the product of the matrix with the column vector v.
func (rm *RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return r3.Vector{X: rm.Row(0).Dot(v), Y: rm.Row(1).Dot(v), Z: rm.Row(2).Dot(v)}
}

func (rm *RotationMatrix) mgl() mgl64.Mat3 {
	var m mgl64.Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m.Set(r, c, rm.At(r, c))
		}
	}
	return m
}

// QuatToRotationMatrix converts a quat to a Rotation Matrix.
func QuatToRotationMatrix(q quat.Number) *RotationMatrix {
	q = Normalize(q)
	m := mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}.Mat4().Mat3()
	rm := &RotationMatrix{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			rm.mat[r*3+c] = m.At(r, c)
		}
	}
	return rm
}
