package ibvs

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const svdEps = 2.220446049250313e-16

// pseudoInverse computes the Moore-Penrose pseudoinverse of a via thin SVD:
// for A = U*S*V^T, pinv(A) = V*S^+*U^T. Singular values below
// max(m,n)*eps relative to the largest are treated as zero so that
// near-rank-deficient input (degenerate point configurations, 2p < d) does
// not blow up into huge or non-finite entries.
func pseudoInverse(a *mat.Dense) (*mat.Dense, error) {
	m, n := a.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, errors.Wrap(ErrDomain, "SVD factorization did not converge")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	// Values are sorted in descending order, so s[0] is the largest.
	tol := float64(maxInt(m, n)) * svdEps * s[0]
	k := len(s)
	sInv := mat.NewDense(k, k, nil)
	for i, sv := range s {
		if sv > tol {
			sInv.Set(i, i, 1.0/sv)
		}
	}

	var vs mat.Dense
	vs.Mul(&v, sInv)
	pinv := mat.NewDense(n, m, nil)
	pinv.Mul(&vs, u.T())
	return pinv, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
