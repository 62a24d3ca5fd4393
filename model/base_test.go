package model_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelkit/examples/account"
	"modelkit/model"
)

func TestMergeLocked_Concurrent(t *testing.T) {
	dst := &account.AccountEntity{UID: "u-1"}

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			src := &account.StaffEntity{
				AccountEntity: account.AccountEntity{Name: ptr(fmt.Sprintf("user-%d", i))},
			}
			assert.True(t, model.MergeLocked(dst, src))
		}()
	}

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			dst.Read(func() {
				if dst.Name != nil {
					assert.Contains(t, *dst.Name, "user-")
				}
			})
		}()
	}

	wg.Wait()

	require.NotNil(t, dst.Name)
	assert.Equal(t, "u-1", dst.UID)
}

func TestMergeLocked_Crossed(t *testing.T) {
	a := &account.AccountEntity{UID: "a", Name: ptr("A")}
	b := &account.AccountEntity{UID: "b", Name: ptr("B")}

	done := make(chan struct{})

	go func() {
		defer close(done)

		var wg sync.WaitGroup

		for range 64 {
			wg.Add(2)

			go func() {
				defer wg.Done()
				model.MergeLocked(a, b)
			}()

			go func() {
				defer wg.Done()
				model.MergeLocked(b, a)
			}()
		}

		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("crossed merges did not finish")
	}

	assert.Equal(t, a.UID, b.UID)
}

func TestMergeLocked_SourceWrittenConcurrently(t *testing.T) {
	dst := &account.AccountEntity{UID: "u-1"}
	src := &account.StaffEntity{AccountEntity: account.AccountEntity{Name: ptr("Alice")}}

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(2)

		go func() {
			defer wg.Done()
			src.Write(func() { src.Disabled = ptr(i%2 == 0) })
		}()

		go func() {
			defer wg.Done()
			assert.True(t, model.MergeLocked(dst, src))
		}()
	}

	wg.Wait()

	assert.Equal(t, "u-1", dst.UID)
}

func TestMergeLocked_NilInputs(t *testing.T) {
	var none *account.AccountEntity

	assert.False(t, model.MergeLocked(none, &account.AccountEntity{}))
	assert.True(t, model.MergeLocked(&account.AccountEntity{}, none))
}

func TestMergeLocked_SharedLock(t *testing.T) {
	staff := &account.StaffEntity{Title: ptr("Engineer")}
	staff.Name = ptr("Alice")

	// The view of staff as an account shares staff's lock.
	assert.True(t, model.MergeLocked(&staff.AccountEntity, staff))
	assert.Equal(t, "Alice", *staff.Name)
}

func TestMergeLocked_Mismatch(t *testing.T) {
	dst := &account.StaffEntity{}

	assert.False(t, model.MergeLocked(dst, &account.AccountEntity{UID: "u-1"}))
	assert.Empty(t, dst.UID)
	assert.True(t, model.MergeLocked(dst, nil))
}

func TestBase_Write(t *testing.T) {
	a := &account.AccountEntity{}

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			a.Write(func() {
				n := int64(1)
				if a.Sex != nil {
					n += *a.Sex
				}

				a.Sex = &n
			})
		}()
	}

	wg.Wait()

	require.NotNil(t, a.Sex)
	assert.Equal(t, int64(8), *a.Sex)
}
