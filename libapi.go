package rfbus

import (
	busmetricspkg "github.com/rfgrid/rfbus/internal/runtime/busmetrics"
	checksumpkg "github.com/rfgrid/rfbus/internal/runtime/checksum"
	configpkg "github.com/rfgrid/rfbus/internal/runtime/config"
	envelopepkg "github.com/rfgrid/rfbus/internal/runtime/envelope"
	errspkg "github.com/rfgrid/rfbus/internal/runtime/errors"
	idspkg "github.com/rfgrid/rfbus/internal/runtime/ids"
	loggingpkg "github.com/rfgrid/rfbus/internal/runtime/logging"
	"github.com/rfgrid/rfbus/internal/runtime/natsbus"
	recordpkg "github.com/rfgrid/rfbus/internal/runtime/record"
)

type (
	Config = configpkg.Config

	MetadataRecord = recordpkg.MetadataRecord
	IQStatistics   = recordpkg.IQStatistics
	Envelope       = envelopepkg.Envelope

	ReceivedMessage = natsbus.ReceivedMessage
	AckFunc         = natsbus.AckFunc
	Handler         = natsbus.Handler
	FetchFunc       = natsbus.FetchFunc
	Conn            = natsbus.Conn
	ConnState       = natsbus.State
	Consumer        = natsbus.Consumer
	Producer        = natsbus.Producer

	Logger    = loggingpkg.Logger
	LogFields = loggingpkg.LogFields
	Metrics   = busmetricspkg.Metrics

	ChecksumMismatchError = recordpkg.ChecksumMismatchError
	MetadataParseError    = recordpkg.ParseError
	EnvelopeParseError    = envelopepkg.ParseError
)

const (
	StateDisconnected = natsbus.StateDisconnected
	StateConnected    = natsbus.StateConnected
	StateClosed       = natsbus.StateClosed

	DefaultFetchTimeout   = configpkg.DefaultFetchTimeout
	RecordTimestampLayout = recordpkg.TimestampLayout
)

var (
	NewConn     = natsbus.NewConn
	NewConsumer = natsbus.NewConsumer
	NewProducer = natsbus.NewProducer

	NewReceivedMessage = natsbus.NewReceivedMessage

	RecordFromMapping = recordpkg.FromMapping
	ReadRecordFile    = recordpkg.ReadFile

	EnvelopeFromRecord  = envelopepkg.FromRecord
	EnvelopeFromMapping = envelopepkg.FromMapping
	DecodeEnvelope      = envelopepkg.Decode

	Checksum     = checksumpkg.Sum
	FileChecksum = checksumpkg.SumFile

	NewMessageID   = idspkg.NewMessageID
	ParseMessageID = idspkg.ParseMessageID

	NewSlogLogger = loggingpkg.NewSlogLogger
	NopLogger     = loggingpkg.Nop

	NewMetrics = busmetricspkg.New
	NopMetrics = busmetricspkg.Nop

	ErrNotConnected    = errspkg.ErrNotConnected
	ErrConnClosed      = errspkg.ErrConnClosed
	ErrHandlerRequired = errspkg.ErrHandlerRequired
	ErrSubjectRequired = errspkg.ErrSubjectRequired
)
