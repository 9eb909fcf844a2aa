package hasher

import (
	"testing"

	"github.com/golang/mock/gomock"

	"merklelog.dev/merkletree/pkg/crypto"
)

func TestDigesterAcceptsMockAlgorithmOfCorrectWidth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	alg := NewMockHashAlgorithm(ctrl)

	probe := make([]byte, crypto.HashSize)
	alg.EXPECT().Sum(nil).Return(probe)
	alg.EXPECT().Sum([]byte("data")).Return(probe)
	alg.EXPECT().Name().Return("mock-256").AnyTimes()

	d, err := crypto.NewDigester(alg)
	if err != nil {
		t.Fatalf("NewDigester: %v", err)
	}
	var want crypto.Hash // the mock always returns the all-zero probe digest
	if got := d.DigestOf([]byte("data")); got != want {
		t.Errorf("DigestOf = %x, want all-zero", got)
	}
}

func TestDigesterRejectsMockAlgorithmOfWrongWidth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	alg := NewMockHashAlgorithm(ctrl)

	alg.EXPECT().Sum(nil).Return(make([]byte, crypto.HashSize+1))
	alg.EXPECT().Name().Return("too-wide").AnyTimes()

	if _, err := crypto.NewDigester(alg); err == nil {
		t.Error("expected NewDigester to reject a wrong-width algorithm")
	}
}
