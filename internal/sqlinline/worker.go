package sqlinline

const QWorkerClaimJob = `--sql 4616c8d6-b7d1-41f4-96e8-5f2697c97d06
with next_job as (
    select id
    from generation_jobs
    where status = 'QUEUED'
    order by created_at asc
    for update skip locked
    limit 1
),
updated as (
    update generation_jobs
    set status = 'RUNNING', updated_at = now()
    where id in (select id from next_job)
    returning id, user_id, ad_id, capability, provider, prompt_json
)
select * from updated;
`

const QWorkerCompleteJob = `--sql eb390f92-987d-42c3-9d6b-978ba17c3b7c
update generation_jobs
set status = 'SUCCEEDED', result_json = $2::jsonb, error_message = '', updated_at = now()
where id = $1::uuid;
`

const QWorkerFailJob = `--sql 42b5e136-c0ff-46e8-b713-2802eb9ea953
update generation_jobs
set status = 'FAILED', error_message = $2::text, updated_at = now()
where id = $1::uuid;
`
