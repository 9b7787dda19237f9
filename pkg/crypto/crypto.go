package crypto

import (
	"crypto/rand"
	"math/big"
)

// RandomBytes returns n bytes from the OS entropy source. It panics if the
// source fails, same as RandIntn.
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}

	return b
}

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}

// RandRange returns a uniform random value in [a, b). It panics if got a
// non-positive parameter or a>=b.
func RandRange(a, b int) int {
	return RandIntn(b-a) + a
}

// SampleUnique returns n distinct uniform values in [min, max], in the order
// they were drawn. It panics if the range holds fewer than n values.
func SampleUnique(n, min, max int) []int {
	if max-min+1 < n {
		panic("sample range is smaller than the sample size")
	}

	picked := make([]int, 0, n)
	seen := make(map[int]bool, n)
	for len(picked) < n {
		v := RandRange(min, max+1)
		if seen[v] {
			continue
		}

		seen[v] = true
		picked = append(picked, v)
	}

	return picked
}
