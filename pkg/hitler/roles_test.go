package hitler

import "testing"

func TestPossibleRolesComposition(t *testing.T) {
	for n := 5; n <= 10; n++ {
		counts := PlayerCount[n]
		perms := PossibleRoles(n)
		if len(perms) == 0 {
			t.Fatalf("%d players: expected at least one role permutation", n)
		}
		seen := map[string]bool{}
		for _, perm := range perms {
			if len(perm) != n {
				t.Fatalf("%d players: permutation length %d != %d", n, len(perm), n)
			}
			var lib, fas, hit int
			for _, r := range perm {
				switch r {
				case RoleLiberal:
					lib++
				case RoleFascist:
					fas++
				case RoleHitler:
					hit++
				}
			}
			if lib != counts[0] || fas+hit != counts[1] || hit != 1 {
				t.Fatalf("%d players: role counts lib=%d fas=%d hit=%d inconsistent with %v", n, lib, fas, hit, counts)
			}
			key := ""
			for _, r := range perm {
				key += r.String() + ","
			}
			if seen[key] {
				t.Fatalf("%d players: duplicate permutation %v", n, perm)
			}
			seen[key] = true
		}
	}
}

func TestPossibleRolesUnknownPlayerCount(t *testing.T) {
	if got := PossibleRoles(4); got != nil {
		t.Fatalf("expected nil for unsupported player count, got %v", got)
	}
}
