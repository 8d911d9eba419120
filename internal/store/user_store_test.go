package store

import (
	"errors"
	"testing"
	"truthhub/internal/models"
)

func TestUserCreateAndFind(t *testing.T) {
	gdb := testDB(t)
	users := NewUserStore(gdb, stubAvatars{})

	created := seedUser(t, users, "MysticSeeker")
	if created.AvatarRef != "/avatar/MysticSeeker" {
		t.Errorf("Expected avatar ref /avatar/MysticSeeker, got %s", created.AvatarRef)
	}
	if created.CreatedAt.IsZero() {
		t.Error("Expected creation timestamp to be set")
	}

	byName, err := users.FindByUsername("MysticSeeker")
	if err != nil {
		t.Fatalf("FindByUsername failed: %v", err)
	}
	byID, err := users.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	byHash, err := users.FindByExternalID("MysticSeeker-hash")
	if err != nil {
		t.Fatalf("FindByExternalID failed: %v", err)
	}
	if byName.ID != created.ID || byID.ID != created.ID || byHash.ID != created.ID {
		t.Error("Lookups disagree about the user's id")
	}
}

func TestUserFindMissing(t *testing.T) {
	gdb := testDB(t)
	users := NewUserStore(gdb, stubAvatars{})

	if _, err := users.FindByUsername("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := users.FindByExternalID("no-such-hash"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUserCreateConflict(t *testing.T) {
	gdb := testDB(t)
	users := NewUserStore(gdb, stubAvatars{})

	seedUser(t, users, "QuantumDreamer")

	if _, err := users.Create("QuantumDreamer", "other-hash"); !errors.Is(err, ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}

	count, err := users.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected failed registration to leave 1 user, got %d", count)
	}
}

// countingAvatars records Generate calls so tests can assert when the
// file is (not) drawn.
type countingAvatars struct {
	calls int
}

func (a *countingAvatars) Generate(username string) ([]byte, error) {
	a.calls++
	return []byte("png"), nil
}

func (a *countingAvatars) Ref(username string) string { return "/avatar/" + username }

// A losing duplicate registration must never draw an avatar: the
// winner's file would be overwritten. Generation happens only after the
// insert has won the username slot.
func TestUserCreateConflictSkipsAvatar(t *testing.T) {
	gdb := testDB(t)
	avatars := &countingAvatars{}
	users := NewUserStore(gdb, avatars)

	if _, err := users.Create("VeilLifter", "first-hash"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if avatars.calls != 1 {
		t.Fatalf("Expected 1 avatar drawn for the winner, got %d", avatars.calls)
	}

	if _, err := users.Create("VeilLifter", "second-hash"); !errors.Is(err, ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}
	if avatars.calls != 1 {
		t.Errorf("Losing registration drew an avatar: %d calls", avatars.calls)
	}
}

func TestUserRemoveCascades(t *testing.T) {
	gdb := testDB(t)
	users := NewUserStore(gdb, stubAvatars{})
	posts := NewPostStore(gdb)
	ledger := NewLikeLedger(gdb)

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	alicePost := seedPost(t, posts, alice, "The Moon Landing Hoax")
	bobPost := seedPost(t, posts, bob, "Aliens Among Us")

	// Bob interacts with Alice's post, Alice with Bob's.
	if _, err := posts.AddComment(alicePost.ID, bob, "stay woke"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if _, err := posts.AddComment(bobPost.ID, alice, "brace yourselves"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if _, _, err := ledger.Toggle(bob.ID, alicePost.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if _, _, err := ledger.Toggle(alice.ID, bobPost.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	if err := users.Remove(alice.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, err := users.FindByID(alice.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected user to be gone, got %v", err)
	}

	// Alice's post and everything referencing it is gone.
	all, err := posts.ListAll(SortNewest)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	for _, p := range all {
		if p.UserID == alice.ID {
			t.Errorf("ListAll still returns removed author's post %d", p.ID)
		}
	}
	if _, err := posts.ListComments(alicePost.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for comments of removed post, got %v", err)
	}

	var orphans int64
	gdb.Model(&models.Like{}).Where("post_id = ?", alicePost.ID).Count(&orphans)
	if orphans != 0 {
		t.Errorf("Expected no like rows for removed post, got %d", orphans)
	}
	gdb.Model(&models.Comment{}).Where("user_id = ?", alice.ID).Count(&orphans)
	if orphans != 0 {
		t.Errorf("Expected no comments by removed user, got %d", orphans)
	}
	gdb.Model(&models.Like{}).Where("user_id = ?", alice.ID).Count(&orphans)
	if orphans != 0 {
		t.Errorf("Expected no like rows by removed user, got %d", orphans)
	}

	// Bob's post lost Alice's like, counter included.
	survivor, err := posts.Get(bobPost.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if survivor.Likes != 0 {
		t.Errorf("Expected surviving post counter 0 after liker removed, got %d", survivor.Likes)
	}
	liked, err := ledger.HasLiked(alice.ID, bobPost.ID)
	if err != nil {
		t.Fatalf("HasLiked failed: %v", err)
	}
	if liked {
		t.Error("Removed user still shows as having liked a post")
	}
}

func TestUserRemoveMissing(t *testing.T) {
	gdb := testDB(t)
	users := NewUserStore(gdb, stubAvatars{})

	if err := users.Remove(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
