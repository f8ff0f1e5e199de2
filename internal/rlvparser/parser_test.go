package rlvparser

import "testing"

func TestParseMessageSplitsSegmentsIndependently(t *testing.T) {
	segs := ParseMessage("@fly=n,bogus,sittp:2.5=n")
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	if !segs[0].OK || segs[0].Command.Behavior != "fly" || segs[0].Command.Op != OpAdd {
		t.Errorf("segment 0: %+v", segs[0])
	}
	if segs[1].OK {
		t.Errorf("segment 1 (bogus) should fail to parse, got %+v", segs[1])
	}
	if !segs[2].OK || segs[2].Command.Behavior != "sittp" {
		t.Errorf("segment 2: %+v", segs[2])
	}
}

func TestParseSegmentClearLiteral(t *testing.T) {
	cmd, ok := ParseSegment("clear")
	if !ok || cmd.Op != OpClear || cmd.OriginalBehavior != "clear" {
		t.Fatalf("got %+v, %v", cmd, ok)
	}
}

func TestParseSegmentClearWithFilter(t *testing.T) {
	cmd, ok := ParseSegment("fly:somefilter=clear")
	if !ok || cmd.Op != OpClear || cmd.ClearFilter != "somefilter" {
		t.Fatalf("got %+v, %v", cmd, ok)
	}
}

func TestParseSegmentAddRemove(t *testing.T) {
	add, ok := ParseSegment("fly=n")
	if !ok || add.Op != OpAdd || add.Behavior != "fly" {
		t.Fatalf("add: %+v, %v", add, ok)
	}
	rem, ok := ParseSegment("fly=y")
	if !ok || rem.Op != OpRemove {
		t.Fatalf("rem: %+v, %v", rem, ok)
	}
}

func TestParseSegmentForce(t *testing.T) {
	cmd, ok := ParseSegment("sit:1234=force")
	if !ok || cmd.Op != OpForce || cmd.Option != "1234" {
		t.Fatalf("got %+v, %v", cmd, ok)
	}
}

func TestParseSegmentGetRequestChannel(t *testing.T) {
	cmd, ok := ParseSegment("version=2222")
	if !ok || cmd.Op != OpGet || cmd.Channel != 2222 {
		t.Fatalf("got %+v, %v", cmd, ok)
	}
}

func TestParseSegmentGetRequestChannelZeroRejected(t *testing.T) {
	// Channel 0 is not a legal reply channel for a get-request.
	if _, ok := ParseSegment("version=0"); ok {
		t.Fatalf("channel 0 should not parse as a get-request")
	}
}

func TestParseSegmentFloatOptionParsed(t *testing.T) {
	cmd, ok := ParseSegment("sittp:4.5=n")
	if !ok {
		t.Fatalf("expected ok")
	}
	if len(cmd.Args) != 1 || cmd.Args[0] != "4.5" {
		t.Fatalf("got args %v", cmd.Args)
	}
}

func TestParseSegmentBadFloatOptionFails(t *testing.T) {
	if _, ok := ParseSegment("sittp:notanumber=n"); ok {
		t.Fatalf("expected failure on malformed float option")
	}
}

func TestParseSegmentUnknownBehaviorRejected(t *testing.T) {
	if _, ok := ParseSegment("totallymadeup=n"); ok {
		t.Fatalf("unknown behavior should fail to parse as a restriction")
	}
	if _, ok := ParseSegment("totallymadeup:opt=n"); ok {
		t.Fatalf("unknown behavior with an option should fail to parse")
	}
	// =force and =channel stay open-ended for the setdebug_X/getenv_X
	// families.
	if cmd, ok := ParseSegment("setdebug_avatarsex:0=force"); !ok || cmd.Op != OpForce {
		t.Fatalf("got %+v, %v", cmd, ok)
	}
	if cmd, ok := ParseSegment("getenv_daytime=4711"); !ok || cmd.Op != OpGet {
		t.Fatalf("got %+v, %v", cmd, ok)
	}
}

func TestParseSegmentSecureVariantSingleArgDegradesToException(t *testing.T) {
	cmd, ok := ParseSegment("recvim_sec:11111111-1111-1111-1111-111111111111=n")
	if !ok {
		t.Fatalf("expected ok")
	}
	if cmd.Behavior != "recvim" {
		t.Fatalf("expected degrade to recvim, got %s", cmd.Behavior)
	}
}

func TestParseSegmentAlias(t *testing.T) {
	cmd, ok := ParseSegment("fartouch:3.0=n")
	if !ok || cmd.Behavior != "touchfar" {
		t.Fatalf("got %+v, %v", cmd, ok)
	}
}

func TestParseSegmentCaseInsensitiveBehaviorCasePreservedOption(t *testing.T) {
	cmd, ok := ParseSegment("SendIm:SomeName=n")
	if !ok || cmd.Behavior != "sendim" {
		t.Fatalf("got %+v, %v", cmd, ok)
	}
	if cmd.Option != "SomeName" {
		t.Fatalf("option case should be preserved, got %q", cmd.Option)
	}
}
